package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub  string `json:"sub"`  // username
	Role string `json:"role"` // USER/CURATOR
	jwt.RegisteredClaims
}

func GenerateToken(secret, username, role string, ttl time.Duration) (string, error) {
	c := Claims{
		Sub:  username,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

// TokenParser adapts ParseToken to the shape the HTTP auth middleware wants.
func TokenParser(secret string) func(token string) (username, role string, err error) {
	return func(token string) (string, string, error) {
		claims, err := ParseToken(secret, token)
		if err != nil {
			return "", "", err
		}
		return claims.Sub, claims.Role, nil
	}
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
