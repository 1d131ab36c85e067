package auth

import (
	"fmt"
	"strings"
)

// User is a configured API user. Passwords are only ever held as bcrypt
// hashes.
type User struct {
	Username     string
	PasswordHash string
	Role         string
}

// UserStore looks up configured users by name. This service manages a small,
// fixed set of accounts, so users live in configuration instead of a table.
type UserStore struct {
	users map[string]User
}

// ParseUsers builds a UserStore from a configuration string of the form
//
//	name:bcrypt-hash:ROLE,name:bcrypt-hash:ROLE
//
// Bcrypt hashes never contain ':' or ',', so the two separators are safe.
func ParseUsers(config string) (*UserStore, error) {
	store := &UserStore{users: make(map[string]User)}
	if strings.TrimSpace(config) == "" {
		return store, nil
	}

	for _, entry := range strings.Split(config, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed user entry %q (want name:hash:role)", entry)
		}
		name, hash, role := parts[0], parts[1], strings.ToUpper(parts[2])
		if name == "" || hash == "" {
			return nil, fmt.Errorf("malformed user entry %q (empty name or hash)", entry)
		}
		if role != "USER" && role != "CURATOR" {
			return nil, fmt.Errorf("unknown role %q for user %q", role, name)
		}
		store.users[name] = User{Username: name, PasswordHash: hash, Role: role}
	}
	return store, nil
}

// Authenticate verifies a username/password pair and returns the matching
// user. The bcrypt comparison runs even for unknown users so that response
// timing does not leak which usernames exist.
func (s *UserStore) Authenticate(username, password string) (User, bool) {
	user, ok := s.users[username]
	if !ok {
		VerifyPassword("$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva", password)
		return User{}, false
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return User{}, false
	}
	return user, true
}

// Len returns the number of configured users.
func (s *UserStore) Len() int {
	return len(s.users)
}
