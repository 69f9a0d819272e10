package models

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleName is the closed set of roles the platform knows about. Adding a
// role means adding a constant here and teaching ParseRoleName about it,
// so every role check is a compile-time-visible change site.
type RoleName string

const (
	RoleAdmin      RoleName = "admin"
	RoleInstructor RoleName = "instructor"
	RoleUser       RoleName = "user"
)

// ParseRoleName maps a stored role name onto the closed RoleName set.
func ParseRoleName(s string) (RoleName, error) {
	switch RoleName(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleInstructor:
		return RoleInstructor, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Role struct {
	gorm.Model
	Name        string         `json:"name" gorm:"unique;not null"`
	Description string         `json:"description"`
	Permissions datatypes.JSON `json:"permissions"` // list of permission keys
	IsDeleted   bool           `gorm:"default:false"`
}
