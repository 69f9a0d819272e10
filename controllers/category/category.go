package categoryController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/utils"
	categoryValidator "elearn/validators/category"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory adds a taxonomy entry. The slug is derived from the name
// unless supplied explicitly and must be unique.
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.CategoryPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	slug := utils.Slugify(reqData.Slug)
	if slug == "" {
		slug = utils.Slugify(reqData.Name)
	}
	if slug == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"slug": "Could not derive a slug from the name!"})
	}

	if err := db.Where("slug = ? OR name = ?", slug, strings.TrimSpace(reqData.Name)).
		First(&courseModels.Category{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Category already exists!")
	}

	isActive := true
	if reqData.IsActive != nil {
		isActive = *reqData.IsActive
	}

	category := courseModels.Category{
		Name:        strings.TrimSpace(reqData.Name),
		Slug:        slug,
		Description: reqData.Description,
		Icon:        reqData.Icon,
		IsActive:    isActive,
	}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to create category!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	db := database.Database.Db

	var category courseModels.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Category not found!")
	}

	reqData, ok := c.Locals("validatedCategoryUpdate").(*categoryValidator.CategoryPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	if reqData.Name != "" {
		name := strings.TrimSpace(reqData.Name)

		var count int64
		db.Model(&courseModels.Category{}).Where("name = ? AND id <> ?", name, category.ID).Count(&count)
		if count > 0 {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Category name already exists!")
		}

		category.Name = name
	}
	if reqData.Slug != "" {
		slug := utils.Slugify(reqData.Slug)

		var count int64
		db.Model(&courseModels.Category{}).Where("slug = ? AND id <> ?", slug, category.ID).Count(&count)
		if count > 0 {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Category slug already exists!")
		}

		category.Slug = slug
	}
	if reqData.Description != "" {
		category.Description = reqData.Description
	}
	if reqData.Icon != "" {
		category.Icon = reqData.Icon
	}
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}

	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error updating category %d: %v", category.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update category!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory removes a taxonomy entry. Courses referencing it keep their
// category id; the registry never owns courses.
func DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	db := database.Database.Db

	var category courseModels.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Category not found!")
	}

	category.IsDeleted = true
	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error deleting category %d: %v", category.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete category!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

func ListCategories(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategoryList").(*categoryValidator.CategoryListPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	query := db.Model(&courseModels.Category{}).Where("is_deleted = ?", false)

	if reqData.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(reqData.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if reqData.Active != nil {
		query = query.Where("is_active = ?", *reqData.Active)
	}

	var total int64
	query.Count(&total)

	var categories []courseModels.Category
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("name asc").Offset(offset).Limit(reqData.Limit).Find(&categories).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch categories!")
	}

	response := fiber.Map{
		"categories": categories,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category list.", response)
}

func GetCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	var category courseModels.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Category not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category details.", category)
}

func GetCategoryBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var category courseModels.Category
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Category not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category details.", category)
}
