package authController

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/utils"
	authValidator "elearn/validators/auth"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// issueTokens mints an access/refresh token pair for the user, appends the
// refresh token to the account's revocable list and records a session with
// device metadata.
func issueTokens(c *fiber.Ctx, user *models.User, roleName string) (string, string, error) {
	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Name, roleName, user.Email)
	if err != nil {
		return "", "", err
	}

	refreshToken, expiresAt, err := middleware.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}

	db := database.Database.Db

	if err := db.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}).Error; err != nil {
		return "", "", err
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	deviceInfo, _ := json.Marshal(map[string]string{
		"user_agent": c.Get("User-Agent"),
	})

	session := models.Session{
		UserID:       user.ID,
		Token:        refreshToken,
		DeviceInfo:   datatypes.JSON(deviceInfo),
		IPAddress:    ip,
		LastActivity: time.Now(),
		IsActive:     true,
	}
	if err := db.Create(&session).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Email is already registered!")
	}

	roleType := models.RoleUser
	if reqData.RoleType != "" {
		parsed, err := models.ParseRoleName(reqData.RoleType)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"role_type": "Unknown role type!"})
		}
		roleType = parsed
	}

	role, err := getOrCreateRole(db, roleType)
	if err != nil {
		log.Printf("Error resolving role %s: %v", roleType, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to register user!")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to process your request!")
	}

	verificationToken, err := utils.GenerateRandomToken(32)
	if err != nil {
		log.Printf("Error generating verification token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to process your request!")
	}
	verificationExpires := time.Now().Add(24 * time.Hour)

	newUser := models.User{
		Name:                     reqData.Name,
		Email:                    reqData.Email,
		Password:                 string(hashedPassword),
		RoleID:                   role.ID,
		EmailVerificationToken:   verificationToken,
		EmailVerificationExpires: &verificationExpires,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to register user!")
	}

	accessToken, refreshToken, err := issueTokens(c, &newUser, role.Name)
	if err != nil {
		log.Printf("Error issuing tokens: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to register user!")
	}

	go func(email, name, token string) {
		if err := utils.SendVerificationEmail(email, name, token); err != nil {
			log.Printf("Error sending verification email to %s: %v", email, err)
		}
	}(newUser.Email, newUser.Name, verificationToken)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"user":         newUser,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Invalid email or password!")
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Invalid email or password!")
	}

	var role models.Role
	if err := db.Where("id = ? AND is_deleted = ?", user.RoleID, false).First(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrRoleMissing, "Account role is missing!")
	}

	// Update last login time
	now := time.Now()
	user.LastLogin = &now
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	accessToken, refreshToken, err := issueTokens(c, &user, role.Name)
	if err != nil {
		log.Printf("Error issuing tokens: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to login!")
	}

	// Sanitize user data
	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshToken mints a new access token from a live refresh token. The
// refresh token itself is never rotated here; a token removed by logout or
// session termination is rejected even before its expiry.
func RefreshToken(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRefresh").(*authValidator.RefreshPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	userID, err := middleware.VerifyRefreshToken(reqData.RefreshToken)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Invalid or expired refresh token!")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Account no longer exists!")
	}

	// The token must still be in the account's live token list
	var stored models.RefreshToken
	if err := db.Where("user_id = ? AND token = ?", user.ID, reqData.RefreshToken).First(&stored).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Refresh token has been revoked!")
	}

	var role models.Role
	if err := db.Where("id = ? AND is_deleted = ?", user.RoleID, false).First(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrRoleMissing, "Account role is missing!")
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Name, role.Name, user.Email)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to refresh token!")
	}

	db.Model(&models.Session{}).
		Where("token = ? AND is_active = ?", reqData.RefreshToken, true).
		Update("last_activity", time.Now())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed successfully.", fiber.Map{
		"accessToken": accessToken,
	})
}

// Logout revokes a refresh token: it is removed from the account's token list
// and the backing session is deactivated. Revoking an already-revoked token
// is a no-op.
func Logout(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRefresh").(*authValidator.RefreshPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	if err := db.Where("token = ?", reqData.RefreshToken).Delete(&models.RefreshToken{}).Error; err != nil {
		log.Printf("Error deleting refresh token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to logout!")
	}

	if err := db.Model(&models.Session{}).
		Where("token = ?", reqData.RefreshToken).
		Update("is_active", false).Error; err != nil {
		log.Printf("Error deactivating session: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully.", nil)
}

func VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"token": "Verification token is required!"})
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email_verification_token = ? AND email_verification_expires > ? AND is_deleted = ?",
		token, time.Now(), false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Invalid or expired verification token!")
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error verifying email: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to verify email!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully.", nil)
}

func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err == nil {
		resetToken, err := utils.GenerateRandomToken(32)
		if err != nil {
			log.Printf("Error generating reset token: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to process your request!")
		}

		resetExpires := time.Now().Add(1 * time.Hour)
		user.ResetPasswordToken = resetToken
		user.ResetPasswordExpires = &resetExpires
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error saving reset token: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to process your request!")
		}

		go func(email, name, token string) {
			if err := utils.SendPasswordResetEmail(email, name, token); err != nil {
				log.Printf("Error sending reset email to %s: %v", email, err)
			}
		}(user.Email, user.Name, resetToken)
	}

	// Do not reveal whether the email exists
	return middleware.JsonResponse(c, fiber.StatusOK, true, "If the email exists, a reset link has been sent.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("reset_password_token = ? AND reset_password_expires > ? AND is_deleted = ?",
		reqData.Token, time.Now(), false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Invalid or expired reset token!")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reset password!")
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error resetting password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reset password!")
	}

	// Force re-login everywhere
	db.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{})
	db.Model(&models.Session{}).Where("user_id = ?", user.ID).Update("is_active", false)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}

// AssignRole moves an account onto another role. Admin only.
func AssignRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignRole").(*authValidator.AssignRolePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	roleName, err := models.ParseRoleName(reqData.Role)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"role": "Unknown role!"})
	}

	db := database.Database.Db

	role, err := getOrCreateRole(db, roleName)
	if err != nil {
		log.Printf("Error resolving role %s: %v", roleName, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to assign role!")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "User not found!")
	}

	user.RoleID = role.ID
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error assigning role: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to assign role!")
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role assigned successfully.", user)
}
