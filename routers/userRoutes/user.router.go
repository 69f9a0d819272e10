package userRoutes

import (
	userController "elearn/controllers/userControllers"
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Patch("/profile", middleware.JWTMiddleware, userController.UpdateProfile)
	userGroup.Post("/profile/image", middleware.JWTMiddleware, userController.UploadProfileImage)
	userGroup.Get("/profile/:id", userController.GetProfileByID)
}
