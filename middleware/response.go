package middleware

import "github.com/gofiber/fiber/v2"

// Stable machine-readable error kinds. The HTTP status says how to react,
// the kind says what actually went wrong.
const (
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrForbidden       = "FORBIDDEN"
	ErrRoleMissing     = "ROLE_MISSING"
	ErrNotFound        = "NOT_FOUND"
	ErrConflict        = "CONFLICT"
	ErrValidation      = "VALIDATION_ERROR"
	ErrInfrastructure  = "INFRASTRUCTURE_ERROR"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse is JsonResponse for failures, carrying the error kind. Internal
// details never leave through here; callers log them and pass a plain message.
func ErrorResponse(c *fiber.Ctx, statusCode int, kind, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"error":   kind,
		"message": message,
		"data":    nil,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":  false,
		"error":   ErrValidation,
		"message": "Validation failed!",
		"errors":  errors,
		"data":    nil,
	})
}
