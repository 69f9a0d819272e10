package authController

import (
	"elearn/models"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type roleSeed struct {
	description string
	permissions []string
}

// Default role definitions. A role record is created lazily from this table
// the first time an account needs it.
var defaultRoles = map[models.RoleName]roleSeed{
	models.RoleUser: {
		description: "Default user role - Basic access to platform",
		permissions: []string{
			"view_courses",
			"enroll_courses",
			"access_content",
			"view_profile",
		},
	},
	models.RoleInstructor: {
		description: "Instructor role - Can create and manage courses",
		permissions: []string{
			"create_courses",
			"edit_courses",
			"delete_courses",
			"create_lessons",
			"edit_lessons",
			"delete_lessons",
			"view_students",
			"view_analytics",
		},
	},
	models.RoleAdmin: {
		description: "Admin role - Full system access",
		permissions: []string{
			"manage_users",
			"manage_roles",
			"approve_courses",
			"manage_categories",
			"view_all_courses",
			"view_all_users",
			"generate_reports",
		},
	},
}

// getOrCreateRole returns the role record for a role name, creating it from
// the defaults table when it does not exist yet.
func getOrCreateRole(db *gorm.DB, name models.RoleName) (*models.Role, error) {
	var role models.Role
	err := db.Where("name = ? AND is_deleted = ?", string(name), false).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	seed := defaultRoles[name]
	perms, err := json.Marshal(seed.permissions)
	if err != nil {
		return nil, err
	}

	role = models.Role{
		Name:        string(name),
		Description: seed.description,
		Permissions: datatypes.JSON(perms),
	}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}
