package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// changeStatus moves a course through its publication state machine. Invalid
// transitions are rejected; slug and owner are never touched here.
func changeStatus(c *fiber.Ctx, to string) error {
	course, errResp := fetchCourse(c)
	if course == nil {
		return errResp
	}
	if !ownsCourse(c, course) {
		return forbiddenNotOwner(c)
	}

	if !courseModels.CanTransition(course.Status, to) {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"status": fmt.Sprintf("Cannot move course from %s to %s!", course.Status, to),
		})
	}

	course.Status = to

	switch to {
	case courseModels.StatusPublished:
		course.IsPublished = true
		if course.PublishedAt == nil {
			now := time.Now()
			course.PublishedAt = &now
		}
	case courseModels.StatusDraft, courseModels.StatusArchived:
		// PublishedAt is history and stays as it is
		course.IsPublished = false
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error changing status of course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.ErrInfrastructure, "Failed to update course status!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated successfully!", course)
}

// SubmitCourse moves a draft into review.
func SubmitCourse(c *fiber.Ctx) error {
	return changeStatus(c, courseModels.StatusPending)
}

func PublishCourse(c *fiber.Ctx) error {
	return changeStatus(c, courseModels.StatusPublished)
}

func UnpublishCourse(c *fiber.Ctx) error {
	return changeStatus(c, courseModels.StatusDraft)
}

func ArchiveCourse(c *fiber.Ctx) error {
	return changeStatus(c, courseModels.StatusArchived)
}

// RejectCourse turns down a course under review. Admin only.
func RejectCourse(c *fiber.Ctx) error {
	return changeStatus(c, courseModels.StatusRejected)
}
