package courseValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CreateCoursePayload struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id"`
	Level       string `json:"level"`
	Language    string `json:"language"`
	Duration    int64  `json:"duration"`
}

func isValidLevel(level string) bool {
	switch level {
	case "", "beginner", "intermediate", "advanced":
		return true
	}
	return false
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCoursePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		} else if len(strings.TrimSpace(reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if !isValidLevel(reqData.Level) {
			errors["level"] = "Level must be beginner, intermediate or advanced!"
		}

		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

type UpdateCoursePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
	Level       string `json:"level"`
	Language    string `json:"language"`
	Duration    *int64 `json:"duration"`
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}

		reqData := new(UpdateCoursePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if !isValidLevel(reqData.Level) {
			errors["level"] = "Level must be beginner, intermediate or advanced!"
		}
		if reqData.Duration != nil && *reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter for course-scoped endpoints.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func parseCourseID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{"id": "Course id must be a positive integer!"})
	}
	c.Locals("courseID", id)
	return nil
}

type CourseListPayload struct {
	Search       string `query:"search"`
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
	Level        string `query:"level"`
	CategoryID   uint   `query:"category_id"`
	InstructorID uint   `query:"instructor_id"`
	Published    *bool  `query:"published"`
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListPayload)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid query parameters!")
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		if reqData.Limit > 100 {
			reqData.Limit = 100
		}
		if !isValidLevel(reqData.Level) {
			return middleware.ValidationErrorResponse(c, map[string]string{"level": "Level must be beginner, intermediate or advanced!"})
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
