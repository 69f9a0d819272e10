package middleware

import (
	"elearn/database"
	"elearn/models"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that allows only the listed roles through.
// Roles are not hierarchical: an admin passes an instructor-gated endpoint
// only when the route lists both. Any lookup failure denies the request.
func RequireRole(allowed ...models.RoleName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, ErrUnauthenticated, "Unauthorized!")
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, ErrUnauthenticated, "User not found!")
		}

		var role models.Role
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", user.RoleID, false).First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The account is valid but its role reference is dangling. This
				// is a data-integrity anomaly, not a wrong-role denial.
				return ErrorResponse(c, fiber.StatusInternalServerError, ErrRoleMissing, "Account role is missing!")
			}
			return ErrorResponse(c, fiber.StatusInternalServerError, ErrInfrastructure, "Server error while checking role!")
		}

		name, err := models.ParseRoleName(role.Name)
		if err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, ErrRoleMissing, "Account role is not recognized!")
		}

		for _, want := range allowed {
			if name == want {
				c.Locals("roleName", name)
				return c.Next()
			}
		}

		return ErrorResponse(c, fiber.StatusForbidden, ErrForbidden, "You do not have permission to access this resource!")
	}
}
