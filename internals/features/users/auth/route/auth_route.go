package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "campusfee_backend/internals/features/users/auth/controller"
	middlewares "campusfee_backend/internals/middlewares"
	authMiddleware "campusfee_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Get("/me", ctrl.Me)
	protected.Get("/logout", ctrl.Logout)
	protected.Post("/change-password", ctrl.ChangePassword)
}
