package categoryRoutes

import (
	categoryController "elearn/controllers/category"
	"elearn/middleware"
	"elearn/models"
	categoryValidator "elearn/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes wires the taxonomy endpoints. Reads are public,
// mutations are admin-only.
func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/category")

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	categoryGroup.Post("/create", middleware.JWTMiddleware, adminOnly, categoryValidator.CreateCategory(), categoryController.CreateCategory)
	categoryGroup.Get("/list", categoryValidator.CategoryList(), categoryController.ListCategories)
	categoryGroup.Get("/slug/:slug", categoryController.GetCategoryBySlug)
	categoryGroup.Get("/:id", categoryValidator.CategoryID(), categoryController.GetCategory)
	categoryGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, categoryValidator.UpdateCategory(), categoryController.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, categoryValidator.CategoryID(), categoryController.DeleteCategory)
}
