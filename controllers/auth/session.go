package authController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ListSessions returns the caller's sessions, most recently active first.
func ListSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized!")
	}

	var sessions []models.Session
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("last_activity desc").
		Find(&sessions).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch sessions!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session list.", sessions)
}

// TerminateSession revokes one of the caller's sessions along with the
// refresh token it was issued for.
func TerminateSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized!")
	}

	sessionID, err := strconv.Atoi(c.Params("id"))
	if err != nil || sessionID < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{"id": "Session id must be a positive integer!"})
	}

	db := database.Database.Db

	var session models.Session
	if err := db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Session not found!")
	}

	if err := db.Where("token = ?", session.Token).Delete(&models.RefreshToken{}).Error; err != nil {
		log.Printf("Error revoking refresh token for session %d: %v", session.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to terminate session!")
	}

	session.IsActive = false
	if err := db.Save(&session).Error; err != nil {
		log.Printf("Error deactivating session %d: %v", session.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to terminate session!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session terminated.", nil)
}
