package utils

import (
	"elearn/database"
	"elearn/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SESSION-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// SweepSessions removes expired refresh tokens, deactivates the sessions they
// backed and clears expired one-time tokens on user accounts.
func SweepSessions() {
	db := database.Database.Db
	now := time.Now()

	// Drop refresh tokens past their expiry
	res := db.Where("expires_at <= ?", now).Delete(&models.RefreshToken{})
	if res.Error != nil {
		logScheduler("Error deleting expired refresh tokens: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Removed expired refresh tokens")
	}

	// Deactivate sessions whose refresh token no longer exists
	if err := db.Model(&models.Session{}).
		Where("is_active = ? AND token NOT IN (?)", true,
			db.Model(&models.RefreshToken{}).Select("token")).
		Update("is_active", false).Error; err != nil {
		logScheduler("Error deactivating stale sessions: " + err.Error())
	}

	// Clear expired email verification tokens
	if err := db.Model(&models.User{}).
		Where("email_verification_token <> '' AND email_verification_expires <= ?", now).
		Updates(map[string]interface{}{
			"email_verification_token":   "",
			"email_verification_expires": nil,
		}).Error; err != nil {
		logScheduler("Error clearing expired verification tokens: " + err.Error())
	}

	// Clear expired password reset tokens
	if err := db.Model(&models.User{}).
		Where("reset_password_token <> '' AND reset_password_expires <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":   "",
			"reset_password_expires": nil,
		}).Error; err != nil {
		logScheduler("Error clearing expired reset tokens: " + err.Error())
	}
}

// StartSessionScheduler runs the session sweeper every hour.
func StartSessionScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1h", SweepSessions); err != nil {
		log.Fatalf("Failed to schedule session sweeper: %v", err)
	}

	c.Start()
	logScheduler("Session sweeper started")
	return c
}
