package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the course hierarchy endpoints. Reads are public;
// writes require an admin or instructor token, and instructors can only touch
// their own courses.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	manageCourses := middleware.RequireRole(models.RoleAdmin, models.RoleInstructor)

	// Course CRUD
	courseGroup.Post("/create", middleware.JWTMiddleware, manageCourses, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/list", validators.CourseList(), controllers.ListCourses)
	courseGroup.Get("/mine", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseList(), controllers.ListMyCourses)
	courseGroup.Get("/slug/:slug", controllers.GetCourseBySlug)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, manageCourses, validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, manageCourses, validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Post("/:id/thumbnail", middleware.JWTMiddleware, manageCourses, validators.CourseID(), controllers.UploadCourseThumbnail)

	// Lifecycle
	courseGroup.Post("/:id/submit", middleware.JWTMiddleware, manageCourses, validators.CourseID(), controllers.SubmitCourse)
	courseGroup.Post("/:id/publish", middleware.JWTMiddleware, manageCourses, validators.CourseID(), controllers.PublishCourse)
	courseGroup.Post("/:id/unpublish", middleware.JWTMiddleware, manageCourses, validators.CourseID(), controllers.UnpublishCourse)
	courseGroup.Post("/:id/archive", middleware.JWTMiddleware, manageCourses, validators.CourseID(), controllers.ArchiveCourse)
	courseGroup.Post("/:id/reject", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.CourseID(), controllers.RejectCourse)

	// Module management
	courseGroup.Post("/:id/module", middleware.JWTMiddleware, manageCourses, validators.CreateModule(), controllers.CreateModule)
	courseGroup.Get("/:id/modules", validators.CourseID(), controllers.ListModules)
	courseGroup.Patch("/:id/modules/reorder", middleware.JWTMiddleware, manageCourses, validators.ReorderModules(), controllers.ReorderModules)
	courseGroup.Put("/:id/module/:module_id", middleware.JWTMiddleware, manageCourses, validators.UpdateModule(), controllers.UpdateModule)
	courseGroup.Delete("/:id/module/:module_id", middleware.JWTMiddleware, manageCourses, validators.ModuleID(), controllers.DeleteModule)

	// Lesson management
	courseGroup.Post("/:id/lesson", middleware.JWTMiddleware, manageCourses, validators.CreateLesson(), controllers.CreateLesson)
	courseGroup.Get("/:id/lessons", validators.ListLessons(), controllers.ListLessons)
	courseGroup.Patch("/:id/lessons/reorder", middleware.JWTMiddleware, manageCourses, validators.ReorderLessons(), controllers.ReorderLessons)
	courseGroup.Put("/:id/lesson/:lesson_id", middleware.JWTMiddleware, manageCourses, validators.UpdateLesson(), controllers.UpdateLesson)
	courseGroup.Delete("/:id/lesson/:lesson_id", middleware.JWTMiddleware, manageCourses, validators.LessonID(), controllers.DeleteLesson)
}
