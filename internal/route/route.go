package route

import (
	"user-management/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// RouteConfig handles route registration
type RouteConfig struct {
	App *fiber.App
}

// NewRouteConfig initializes the router
func NewRouteConfig(app *fiber.App) *RouteConfig {
	return &RouteConfig{app}
}

func (r *RouteConfig) WelcomeRoutes(welcomeController *controller.WelcomeController) {
	r.App.Get("/", welcomeController.Hello)
}

// RegisterAuthRoutes defines authentication routes
func (r *RouteConfig) RegisterAuthRoutes(authController *controller.AuthController) {
	auth := r.App.Group("/api/auth")
	{
		auth.Post("/register", authController.Register)
		auth.Post("/login", authController.Login)
		auth.Post("/refresh-token", authController.RefreshToken)
		auth.Post("/logout", authController.Logout)
		auth.Post("/forgot-password", authController.ForgotPassword)
		auth.Post("/reset-password", authController.ResetPassword)
	}
}

// RegisterUserRoutes defines user-related routes behind authentication
func (r *RouteConfig) RegisterUserRoutes(userController *controller.UserController, authMiddleware fiber.Handler) {
	user := r.App.Group("/api/users")
	user.Use(authMiddleware)
	{
		user.Get("/", userController.List)
		user.Get("/me", userController.Me)
		user.Post("/", userController.Create)
		user.Get("/:userId", userController.Get)
		user.Put("/:userId", userController.Update)
		user.Delete("/:userId", userController.Delete)
		user.Post("/:userId/roles", userController.AssignRole)
	}
}

// RegisterRoleRoutes defines role-related routes behind authentication
func (r *RouteConfig) RegisterRoleRoutes(roleController *controller.RoleController, authMiddleware fiber.Handler) {
	role := r.App.Group("/api/roles")
	role.Use(authMiddleware)
	{
		role.Get("/", roleController.List)
		role.Post("/", roleController.Create)
		role.Get("/:roleId", roleController.Get)
		role.Delete("/:roleId", roleController.Remove)
		role.Patch("/:roleId/permissions", roleController.AddPermissions)
		role.Delete("/:roleId/permissions", roleController.RemovePermissions)
	}
}

// RegisterPermissionRoutes defines permission-related routes behind authentication
func (r *RouteConfig) RegisterPermissionRoutes(permissionController *controller.PermissionController, authMiddleware fiber.Handler) {
	permission := r.App.Group("/api/permissions")
	permission.Use(authMiddleware)
	{
		permission.Get("/", permissionController.List)
		permission.Post("/", permissionController.Create)
		permission.Get("/:permissionId", permissionController.Get)
		permission.Delete("/:permissionId", permissionController.Deactivate)
	}
}
