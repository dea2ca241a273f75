package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// InitValidator registers custom rules on gin's binding engine so that
// ShouldBindJSON / ShouldBindQuery apply them.
func InitValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return registerRules(v)
}

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("username", validateUsername); err != nil {
		return err
	}
	return v.RegisterValidation("role", validateRole)
}

// validateUsername 3-50 chars of letters, digits and underscore
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	return usernamePattern.MatchString(username)
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "user":
		return true
	}
	return false
}

// FormatValidationError turns validator errors into a readable message
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		param := e.Param()

		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		case "gte":
			message = fmt.Sprintf("%s must be >= %s", field, param)
		case "lte":
			message = fmt.Sprintf("%s must be <= %s", field, param)
		case "username":
			message = fmt.Sprintf("%s may only contain letters, digits and underscore, 3-50 chars", field)
		case "role":
			message = fmt.Sprintf("%s must be admin or user", field)
		default:
			message = fmt.Sprintf("%s failed %s validation", field, e.Tag())
		}
		messages = append(messages, message)
	}
	return strings.Join(messages, "; ")
}
