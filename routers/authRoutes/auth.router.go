package authRoutes

import (
	authControllers "elearn/controllers/auth"
	"elearn/middleware"
	"elearn/models"
	authValidators "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/refresh", authValidators.Refresh(), authControllers.RefreshToken)
	authGroup.Post("/logout", authValidators.Refresh(), authControllers.Logout)
	authGroup.Get("/verify/email", authControllers.VerifyEmail)
	authGroup.Post("/forgot/password", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), authControllers.ResetPassword)

	authGroup.Get("/sessions", middleware.JWTMiddleware, authControllers.ListSessions)
	authGroup.Delete("/sessions/:id", middleware.JWTMiddleware, authControllers.TerminateSession)

	authGroup.Post("/assign/role", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), authValidators.AssignRole(), authControllers.AssignRole)
	authGroup.Get("/users", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), authValidators.UserList(), authControllers.ListUsers)

	roleGroup := app.Group("/role")

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	roleGroup.Get("/list", middleware.JWTMiddleware, adminOnly, authControllers.ListRoles)
	roleGroup.Get("/:id/stats", middleware.JWTMiddleware, adminOnly, authControllers.RoleStats)
	roleGroup.Patch("/:id", middleware.JWTMiddleware, adminOnly, authValidators.UpdateRole(), authControllers.UpdateRole)
	roleGroup.Post("/:id/permission", middleware.JWTMiddleware, adminOnly, authValidators.Permission(), authControllers.AddRolePermission)
	roleGroup.Delete("/:id/permission", middleware.JWTMiddleware, adminOnly, authValidators.Permission(), authControllers.RemoveRolePermission)
}
