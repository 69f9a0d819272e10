package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RefreshToken is one entry in an account's revocable token list. A refresh
// token that is no longer present here is rejected even before it expires.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session records one active refresh-token grant with device metadata. It is
// revocable independently of the token's expiry timestamp.
type Session struct {
	gorm.Model
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	Token        string         `json:"-" gorm:"index;not null"`
	DeviceInfo   datatypes.JSON `json:"device_info"`
	IPAddress    string         `json:"ip_address"`
	LastActivity time.Time      `json:"last_activity"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
}
