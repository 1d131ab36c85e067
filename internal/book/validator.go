package book

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"lendingapi/internal/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("isbn", validateISBN)
}

func validateISBN(fl validator.FieldLevel) bool {
	return isbnPattern.MatchString(fl.Field().String())
}

// validateStruct runs tag validation over a request body and renders
// field-level error details.
func validateStruct(s interface{}) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []httpx.ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "isbn":
			message = fmt.Sprintf("%s must be 10 digits, or 13 digits with a hyphen after the first 3", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		details = append(details, httpx.ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return details
}
