package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                     string `json:"name" gorm:"default:''"`
	Email                    string `json:"email" gorm:"unique;not null"`
	Password                 string `json:"password,omitempty" gorm:"not null"`
	RoleID                   uint   `json:"role_id" gorm:"index;not null"`
	ProfileImage             string `json:"profile_image" gorm:"default:''"`
	ProfileImageRef          string `json:"-" gorm:"default:''"`
	Bio                      string `json:"bio"`
	Phone                    string `json:"phone"`
	IsEmailVerified          bool   `json:"is_email_verified" gorm:"default:false"`
	EmailVerificationToken   string `json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	ResetPasswordToken       string     `json:"-"`
	ResetPasswordExpires     *time.Time `json:"-"`
	LastLogin                *time.Time `json:"last_login"`
	IsDeleted                bool       `gorm:"default:false"`
}
