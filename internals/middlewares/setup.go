package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain. Route-specific
// middleware (auth, role checks, login limiter) is attached per group in
// internals/route.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
