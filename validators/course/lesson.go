package courseValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidContentType(t string) bool {
	switch t {
	case "", "video", "text", "quiz", "assignment", "document":
		return true
	}
	return false
}

type CreateLessonPayload struct {
	ModuleID      uint   `json:"module_id"` // 0 keeps the lesson course-scoped
	Title         string `json:"title"`
	Description   string `json:"description"`
	Content       string `json:"content"`
	ContentType   string `json:"content_type"`
	VideoURL      string `json:"video_url"`
	VideoDuration int    `json:"video_duration"`
	IsFree        bool   `json:"is_free"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}

		reqData := new(CreateLessonPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if !isValidContentType(reqData.ContentType) {
			errors["content_type"] = "Content type must be video, text, quiz, assignment or document!"
		}

		if reqData.VideoDuration < 0 {
			errors["video_duration"] = "Video duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

type UpdateLessonPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Content       string `json:"content"`
	ContentType   string `json:"content_type"`
	VideoURL      string `json:"video_url"`
	VideoDuration *int   `json:"video_duration"`
	IsFree        *bool  `json:"is_free"`
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}
		if err := parseLessonID(c); err != nil {
			return err
		}

		reqData := new(UpdateLessonPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if !isValidContentType(reqData.ContentType) {
			errors["content_type"] = "Content type must be video, text, quiz, assignment or document!"
		}
		if reqData.VideoDuration != nil && *reqData.VideoDuration < 0 {
			errors["video_duration"] = "Video duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// LessonID validates the :lesson_id route parameter together with :id.
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}
		if err := parseLessonID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func parseLessonID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("lesson_id"))
	if err != nil || id < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{"lesson_id": "Lesson id must be a positive integer!"})
	}
	c.Locals("lessonID", id)
	return nil
}

type ListLessonsPayload struct {
	ModuleID *uint `query:"module_id"`
}

func ListLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}

		reqData := new(ListLessonsPayload)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid query parameters!")
		}

		c.Locals("validatedLessonList", reqData)
		return c.Next()
	}
}

type ReorderLessonsPayload struct {
	ModuleID uint        `json:"module_id"` // 0 targets course-scoped lessons
	Items    []OrderItem `json:"items"`
}

func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}

		reqData := new(ReorderLessonsPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if errors := validateOrderItems(reqData.Items); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonReorder", reqData)
		return c.Next()
	}
}
