package courseController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	courseValidator "elearn/validators/course"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a draft course owned by the acting account. The slug
// is derived from the title unless supplied explicitly; either way it must be
// globally unique.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized!")
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCoursePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	slug := utils.Slugify(reqData.Slug)
	if slug == "" {
		slug = utils.Slugify(reqData.Title)
	}
	if slug == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"slug": "Could not derive a slug from the title!"})
	}

	if err := db.Where("slug = ?", slug).First(&courseModels.Course{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Course slug already exists!")
	}

	if reqData.CategoryID != 0 {
		if err := db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&courseModels.Category{}).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Category not found!")
		}
	}

	level := reqData.Level
	if level == "" {
		level = "beginner"
	}
	language := reqData.Language
	if language == "" {
		language = "English"
	}

	course := courseModels.Course{
		Title:        strings.TrimSpace(reqData.Title),
		Slug:         slug,
		Description:  reqData.Description,
		InstructorID: userID,
		CategoryID:   reqData.CategoryID,
		Level:        level,
		Language:     language,
		Duration:     reqData.Duration,
		Status:       courseModels.StatusDraft,
	}

	if err := db.Create(&course).Error; err != nil {
		if isUniqueViolation(err) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.ErrConflict, "Course slug already exists!")
		}
		log.Printf("Error creating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to create course!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates course metadata. Slug, owner and status never change
// here; status moves only through the dedicated transition endpoints.
func UpdateCourse(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCoursePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	if reqData.CategoryID != nil && *reqData.CategoryID != 0 {
		if err := db.Where("id = ? AND is_deleted = ?", *reqData.CategoryID, false).First(&courseModels.Category{}).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Category not found!")
		}
	}

	if reqData.Title != "" {
		course.Title = strings.TrimSpace(reqData.Title)
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Language != "" {
		course.Language = reqData.Language
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.CategoryID != nil {
		course.CategoryID = *reqData.CategoryID
	}

	if err := db.Save(course).Error; err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func courseDetails(db *gorm.DB, course *courseModels.Course) fiber.Map {
	details := fiber.Map{"course": course}

	var instructor models.User
	if err := db.Select("id", "name", "email", "profile_image").
		Where("id = ?", course.InstructorID).First(&instructor).Error; err == nil {
		details["instructor"] = fiber.Map{
			"id":            instructor.ID,
			"name":          instructor.Name,
			"email":         instructor.Email,
			"profile_image": instructor.ProfileImage,
		}
	}

	if course.CategoryID != 0 {
		var category courseModels.Category
		if err := db.Where("id = ? AND is_deleted = ?", course.CategoryID, false).First(&category).Error; err == nil {
			details["category"] = fiber.Map{
				"id":   category.ID,
				"name": category.Name,
				"slug": category.Slug,
			}
		}
	}

	return details
}

func GetCourse(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details.", courseDetails(database.Database.Db, course))
}

func GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.ErrNotFound, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details.", courseDetails(database.Database.Db, &course))
}

func ListCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*courseValidator.CourseListPayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request data!")
	}

	db := database.Database.Db

	query := db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	if reqData.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(reqData.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if reqData.Level != "" {
		query = query.Where("level = ?", reqData.Level)
	}
	if reqData.CategoryID != 0 {
		query = query.Where("category_id = ?", reqData.CategoryID)
	}
	if reqData.InstructorID != 0 {
		query = query.Where("instructor_id = ?", reqData.InstructorID)
	}
	if reqData.Published != nil {
		query = query.Where("is_published = ?", *reqData.Published)
	}

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("created_at desc").Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch courses!")
	}

	response := fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list.", response)
}

// ListMyCourses returns the acting instructor's own courses.
func ListMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized!")
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("instructor_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to fetch courses!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list.", courses)
}

// DeleteCourse removes a course together with all of its modules and lessons
// as one atomic unit. If any step fails the whole deletion rolls back and the
// hierarchy is left exactly as it was.
func DeleteCourse(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	db := database.Database.Db

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting delete transaction: %v", tx.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete course!")
	}

	if err := tx.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"order_index": gorm.Expr("-id"),
		}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting lessons of course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete course!")
	}

	if err := tx.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"order_index": gorm.Expr("-id"),
		}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting modules of course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete course!")
	}

	course.IsDeleted = true
	if err := tx.Save(course).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete course!")
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing course delete %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to delete course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course and associated content deleted successfully!", nil)
}

// UploadCourseThumbnail stores a thumbnail image and replaces the previous one.
func UploadCourseThumbnail(c *fiber.Ctx) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"thumbnail": "Thumbnail file is required!"})
	}

	result, err := utils.UploadMedia(file, "courses", course.ThumbnailRef)
	if err != nil {
		log.Printf("Error uploading thumbnail for course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to upload thumbnail!")
	}

	course.Thumbnail = result.URL
	course.ThumbnailRef = result.Ref
	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving thumbnail for course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to upload thumbnail!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", course)
}
