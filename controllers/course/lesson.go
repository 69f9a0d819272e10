package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	courseValidator "elearn/validators/course"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateLesson appends a lesson to a course, optionally inside a module. The
// order is max+1 within the (course, module) pair, with the same optimistic
// retry as module creation.
func CreateLesson(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.CreateLessonPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	if reqData.ModuleID != 0 {
		if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.ModuleID, course.ID, false).
			First(&courseModels.Module{}).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Module not found in this course!")
		}
	}

	contentType := reqData.ContentType
	if contentType == "" {
		contentType = "video"
	}

	lesson := courseModels.Lesson{
		CourseID:      course.ID,
		ModuleID:      reqData.ModuleID,
		Title:         strings.TrimSpace(reqData.Title),
		Description:   reqData.Description,
		Content:       reqData.Content,
		ContentType:   contentType,
		VideoURL:      reqData.VideoURL,
		VideoDuration: reqData.VideoDuration,
		IsFree:        reqData.IsFree,
	}

	created := false
	for attempt := 0; attempt < 3 && !created; attempt++ {
		lesson.ID = 0
		lesson.Order = nextOrder(db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND module_id = ?", course.ID, reqData.ModuleID))

		err := db.Create(&lesson).Error
		switch {
		case err == nil:
			created = true
		case isUniqueViolation(err):
			// lost the race for this order slot, recompute and try again
		default:
			log.Printf("Error creating lesson: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to create lesson!")
		}
	}
	if !created {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to allocate a lesson order, please retry!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson changes lesson content and metadata. Order and module
// assignment stay as they are.
func UpdateLesson(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, course.ID, false).First(&lesson).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Lesson not found!")
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	if reqData.Title != "" {
		lesson.Title = strings.TrimSpace(reqData.Title)
	}
	if reqData.Description != "" {
		lesson.Description = reqData.Description
	}
	if reqData.Content != "" {
		lesson.Content = reqData.Content
	}
	if reqData.ContentType != "" {
		lesson.ContentType = reqData.ContentType
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.VideoDuration != nil {
		lesson.VideoDuration = *reqData.VideoDuration
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
	}

	if err := db.Save(&lesson).Error; err != nil {
		log.Printf("Error updating lesson %d: %v", lesson.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, course.ID, false).First(&lesson).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Lesson not found!")
	}

	lesson.IsDeleted = true
	lesson.Order = -int(lesson.ID)
	if err := db.Save(&lesson).Error; err != nil {
		log.Printf("Error deleting lesson %d: %v", lesson.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// ListLessons lists a course's lessons in display order, optionally filtered
// to one module (module_id=0 selects course-scoped lessons).
func ListLessons(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedLessonList").(*courseValidator.ListLessonsPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	query := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", course.ID, false)
	if reqData.ModuleID != nil {
		query = query.Where("module_id = ?", *reqData.ModuleID)
	}

	var lessons []courseModels.Lesson
	if err := query.Order("module_id asc, order_index asc").Find(&lessons).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch lessons!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson list.", lessons)
}

// ReorderLessons applies a caller-supplied order assignment to lessons within
// one (course, module) scope as a single atomic batch.
func ReorderLessons(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	reqData, ok := c.Locals("validatedLessonReorder").(*courseValidator.ReorderLessonsPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	if reqData.ModuleID != 0 {
		if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.ModuleID, course.ID, false).
			First(&courseModels.Module{}).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Module not found in this course!")
		}
	}

	ids := make([]uint, 0, len(reqData.Items))
	orders := make([]int, 0, len(reqData.Items))
	for _, item := range reqData.Items {
		ids = append(ids, item.ID)
		orders = append(orders, item.Order)
	}

	var affected int64
	db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND module_id = ? AND is_deleted = ? AND id IN ?", course.ID, reqData.ModuleID, false, ids).
		Count(&affected)
	if affected != int64(len(ids)) {
		return middleware.ValidationErrorResponse(c, map[string]string{"items": "One or more lessons do not belong to this scope!"})
	}

	var clash int64
	db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND module_id = ? AND is_deleted = ? AND id NOT IN ? AND order_index IN ?",
			course.ID, reqData.ModuleID, false, ids, orders).
		Count(&clash)
	if clash > 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"items": "A target order is already used by a lesson outside this batch!"})
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting reorder transaction: %v", tx.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder lessons!")
	}

	for _, item := range reqData.Items {
		if err := tx.Model(&courseModels.Lesson{}).
			Where("id = ?", item.ID).
			Update("order_index", item.Order+orderStagingOffset).Error; err != nil {
			tx.Rollback()
			log.Printf("Error staging lesson order %d: %v", item.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder lessons!")
		}
	}

	for _, item := range reqData.Items {
		if err := tx.Model(&courseModels.Lesson{}).
			Where("id = ?", item.ID).
			Update("order_index", item.Order).Error; err != nil {
			tx.Rollback()
			log.Printf("Error applying lesson order %d: %v", item.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder lessons!")
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing lesson reorder: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to reorder lessons!")
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND module_id = ? AND is_deleted = ?", course.ID, reqData.ModuleID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch lessons!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", lessons)
}
