package userController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/utils"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type profileResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	ProfileImage    string `json:"profileImage"`
	Bio             string `json:"bio"`
	Phone           string `json:"phone"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

func toProfileResponse(user *models.User, roleName string) profileResponse {
	return profileResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            roleName,
		ProfileImage:    user.ProfileImage,
		Bio:             user.Bio,
		Phone:           user.Phone,
		IsEmailVerified: user.IsEmailVerified,
	}
}

func roleNameFor(user *models.User) string {
	var role models.Role
	if err := database.Database.Db.First(&role, user.RoleID).Error; err != nil {
		return ""
	}
	return role.Name
}

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "User not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile details.", toProfileResponse(&user, roleNameFor(&user)))
}

// GetProfileByID exposes another user's public profile.
func GetProfileByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{"id": "User id must be a positive integer!"})
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "User not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile details.", toProfileResponse(&user, roleNameFor(&user)))
}

type updateProfilePayload struct {
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Phone string `json:"phone"`
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "User not found!")
	}

	reqData := new(updateProfilePayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
	}

	if reqData.Name != "" {
		name := strings.TrimSpace(reqData.Name)
		if len(name) < 2 {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name must be at least 2 characters long!"})
		}
		user.Name = name
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}
	if reqData.Phone != "" {
		user.Phone = reqData.Phone
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating profile for user %d: %v", user.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update profile!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", toProfileResponse(&user, roleNameFor(&user)))
}

func UploadProfileImage(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "User not found!")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Image file is required!")
	}

	result, err := utils.UploadMedia(file, "profiles", user.ProfileImageRef)
	if err != nil {
		log.Printf("Error uploading profile image for user %d: %v", user.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to upload image!")
	}

	user.ProfileImage = result.URL
	user.ProfileImageRef = result.Ref

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update profile!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile image updated successfully!", fiber.Map{
		"profileImage": user.ProfileImage,
	})
}
