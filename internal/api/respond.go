package api

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Stable error codes carried in every failure body. Underlying store and
// validation errors are logged server-side, never echoed to clients.
const (
	CodeValidation     = "validation_error"
	CodeAuthentication = "authentication_error"
	CodeAuthorization  = "authorization_error"
	CodeNotFound       = "not_found"
	CodeStore          = "store_error"
)

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	})
}

func failStore(c *fiber.Ctx, message string, err error) error {
	slog.ErrorContext(c.UserContext(), message, slog.String("error", err.Error()))
	return fail(c, fiber.StatusInternalServerError, CodeStore, message)
}

// validationMessage turns the first struct-tag violation into the wording the
// frontend has always shown.
func validationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "Invalid request body"
	}

	fieldErr := validationErrors[0]
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "min":
		if fieldErr.Field() == "Password" {
			return "Password must be at least 6 characters"
		}
		return fieldErr.Field() + " is too short"
	case "email":
		return "A valid email address is required"
	case "oneof":
		return fieldErr.Field() + " must be one of: " + fieldErr.Param()
	default:
		return "Invalid value for " + fieldErr.Field()
	}
}
