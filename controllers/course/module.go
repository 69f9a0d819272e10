package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	courseValidator "elearn/validators/course"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// nextOrder computes max(order)+1 for a sibling scope. Deleted rows park
// their order below zero, so a freed slot is never handed out again.
func nextOrder(query *gorm.DB) int {
	var maxOrder int
	query.Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
	if maxOrder < 0 {
		maxOrder = 0
	}
	return maxOrder + 1
}

// CreateModule appends a module to a course. Duplicate titles within the
// course are rejected case-insensitively; the order is max+1 within the
// course, recomputed and retried if a concurrent create grabs the same slot.
func CreateModule(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModulePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db
	title := strings.TrimSpace(reqData.Title)

	var count int64
	db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ? AND LOWER(title) = LOWER(?)", course.ID, false, title).
		Count(&count)
	if count > 0 {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "A module with this title already exists in the course!")
	}

	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       title,
		Description: reqData.Description,
	}

	created := false
	for attempt := 0; attempt < 3 && !created; attempt++ {
		module.ID = 0
		module.Order = nextOrder(db.Model(&courseModels.Module{}).Where("course_id = ?", course.ID))

		err := db.Create(&module).Error
		switch {
		case err == nil:
			created = true
		case isUniqueViolation(err):
			// lost the race for this order slot, recompute and try again
		default:
			log.Printf("Error creating module: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to create module!")
		}
	}
	if !created {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to allocate a module order, please retry!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule changes module metadata. Order moves only through reorder.
func UpdateModule(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, course.ID, false).First(&module).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Module not found!")
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.ModulePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	if reqData.Title != "" {
		title := strings.TrimSpace(reqData.Title)

		var count int64
		db.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ? AND LOWER(title) = LOWER(?) AND id <> ?", course.ID, false, title, module.ID).
			Count(&count)
		if count > 0 {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "A module with this title already exists in the course!")
		}

		module.Title = title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}

	if err := db.Save(&module).Error; err != nil {
		log.Printf("Error updating module %d: %v", module.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update module!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule removes a module and the lessons inside it as one atomic unit.
func DeleteModule(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, course.ID, false).First(&module).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Module not found!")
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting delete transaction: %v", tx.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete module!")
	}

	if err := tx.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"order_index": gorm.Expr("-id"),
		}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting lessons of module %d: %v", module.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete module!")
	}

	module.IsDeleted = true
	module.Order = -int(module.ID)
	if err := tx.Save(&module).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting module %d: %v", module.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete module!")
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing module delete %d: %v", module.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete module!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// ListModules lists a course's modules in display order with lesson counts.
func ListModules(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}

	db := database.Database.Db

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch modules!")
	}

	type ModuleWithCount struct {
		courseModels.Module
		LessonCount int64 `json:"lesson_count"`
	}

	modulesWithCount := make([]ModuleWithCount, len(modules))
	for i, mod := range modules {
		var count int64
		db.Model(&courseModels.Lesson{}).Where("module_id = ? AND is_deleted = ?", mod.ID, false).Count(&count)
		modulesWithCount[i] = ModuleWithCount{Module: mod, LessonCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module list.", modulesWithCount)
}

// ReorderModules applies a caller-supplied order assignment to a set of
// modules as a single atomic batch. Every id must belong to the course and no
// target order may collide, inside or outside the batch; on any failure
// nothing moves.
func ReorderModules(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	reqData, ok := c.Locals("validatedReorder").(*courseValidator.ReorderPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	ids := make([]uint, 0, len(reqData.Items))
	orders := make([]int, 0, len(reqData.Items))
	for _, item := range reqData.Items {
		ids = append(ids, item.ID)
		orders = append(orders, item.Order)
	}

	var affected int64
	db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ? AND id IN ?", course.ID, false, ids).
		Count(&affected)
	if affected != int64(len(ids)) {
		return middleware.ValidationErrorResponse(c, map[string]string{"items": "One or more modules do not belong to this course!"})
	}

	var clash int64
	db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ? AND id NOT IN ? AND order_index IN ?", course.ID, false, ids, orders).
		Count(&clash)
	if clash > 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"items": "A target order is already used by a module outside this batch!"})
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting reorder transaction: %v", tx.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder modules!")
	}

	// Stage first so the unique index never sees a transient duplicate
	for _, item := range reqData.Items {
		if err := tx.Model(&courseModels.Module{}).
			Where("id = ?", item.ID).
			Update("order_index", item.Order+orderStagingOffset).Error; err != nil {
			tx.Rollback()
			log.Printf("Error staging module order %d: %v", item.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder modules!")
		}
	}

	for _, item := range reqData.Items {
		if err := tx.Model(&courseModels.Module{}).
			Where("id = ?", item.ID).
			Update("order_index", item.Order).Error; err != nil {
			tx.Rollback()
			log.Printf("Error applying module order %d: %v", item.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder modules!")
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing module reorder: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder modules!")
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch modules!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules reordered successfully!", modules)
}
