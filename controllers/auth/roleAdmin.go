package authController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	authValidator "elearn/validators/auth"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// fetchRole resolves the :id route param to a live role record. It writes
// the error response itself and returns a nil role when the lookup fails.
func fetchRole(c *fiber.Ctx) *models.Role {
	roleID, err := strconv.Atoi(c.Params("id"))
	if err != nil || roleID < 1 {
		middleware.ValidationErrorResponse(c, map[string]string{"id": "Role id must be a positive integer!"})
		return nil
	}

	var role models.Role
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", roleID, false).First(&role).Error; err != nil {
		middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Role not found!")
		return nil
	}

	return &role
}

func decodePermissions(role *models.Role) []string {
	var perms []string
	if len(role.Permissions) > 0 {
		if err := json.Unmarshal(role.Permissions, &perms); err != nil {
			log.Printf("Error decoding permissions for role %d: %v", role.ID, err)
		}
	}
	if perms == nil {
		perms = []string{}
	}
	return perms
}

// ListRoles returns every live role, newest first.
func ListRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Find(&roles).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch roles!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role list.", fiber.Map{
		"roles": roles,
		"total": len(roles),
	})
}

// RoleStats returns a role together with how many accounts currently hold it.
func RoleStats(c *fiber.Ctx) error {
	role := fetchRole(c)
	if role == nil {
		return nil
	}

	var userCount int64
	if err := database.Database.Db.Model(&models.User{}).
		Where("role_id = ? AND is_deleted = ?", role.ID, false).
		Count(&userCount).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch role stats!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role stats.", fiber.Map{
		"role":      role,
		"userCount": userCount,
	})
}

// UpdateRole changes a role's description. The role name itself is part of
// the closed RoleName set and is not editable.
func UpdateRole(c *fiber.Ctx) error {
	role := fetchRole(c)
	if role == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedRoleUpdate").(*authValidator.UpdateRolePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	role.Description = strings.TrimSpace(reqData.Description)
	if err := database.Database.Db.Save(role).Error; err != nil {
		log.Printf("Error updating role %d: %v", role.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update role!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated.", role)
}

// AddRolePermission appends a permission key to a role's permission set.
func AddRolePermission(c *fiber.Ctx) error {
	role := fetchRole(c)
	if role == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedPermission").(*authValidator.PermissionPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	permission := strings.TrimSpace(reqData.Permission)

	perms := decodePermissions(role)
	for _, p := range perms {
		if p == permission {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Permission already exists in this role!")
		}
	}

	perms = append(perms, permission)
	encoded, err := json.Marshal(perms)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to add permission!")
	}

	role.Permissions = datatypes.JSON(encoded)
	if err := database.Database.Db.Save(role).Error; err != nil {
		log.Printf("Error adding permission to role %d: %v", role.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to add permission!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission added.", role)
}

// RemoveRolePermission drops a permission key from a role's permission set.
// Removing a permission the role never had is not an error.
func RemoveRolePermission(c *fiber.Ctx) error {
	role := fetchRole(c)
	if role == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedPermission").(*authValidator.PermissionPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	permission := strings.TrimSpace(reqData.Permission)

	perms := decodePermissions(role)
	kept := make([]string, 0, len(perms))
	for _, p := range perms {
		if p != permission {
			kept = append(kept, p)
		}
	}

	encoded, err := json.Marshal(kept)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to remove permission!")
	}

	role.Permissions = datatypes.JSON(encoded)
	if err := database.Database.Db.Save(role).Error; err != nil {
		log.Printf("Error removing permission from role %d: %v", role.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to remove permission!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission removed.", role)
}

// ListUsers returns a paginated account listing for administrators.
func ListUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*authValidator.UserListPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	query := db.Model(&models.User{}).Where("is_deleted = ?", false)
	if reqData.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(reqData.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("created_at desc").Offset(offset).Limit(reqData.Limit).Find(&users).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch users!")
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
