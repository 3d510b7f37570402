package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusfee_backend/internals/constants"
	studentRoute "campusfee_backend/internals/features/academics/students/route"
	feeRoute "campusfee_backend/internals/features/finance/fees/route"
	paymentRoute "campusfee_backend/internals/features/finance/payments/route"
	statisticsRoute "campusfee_backend/internals/features/finance/statistics/route"
	authRoute "campusfee_backend/internals/features/users/auth/route"
	userRoute "campusfee_backend/internals/features/users/user/route"
	authMiddleware "campusfee_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature router onto the app. Three surfaces:
//
//	/api/auth     — public + token endpoints
//	/api/admin    — admin-only management API
//	/api/student  — student self-service API
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)

	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Admin access required", constants.RoleAdmin),
	)
	studentRoute.StudentAdminRoutes(admin, db)
	feeRoute.FeeAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	statisticsRoute.StatisticsAdminRoutes(admin, db)

	student := app.Group("/api/student",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Student access required", constants.RoleStudent),
	)
	userRoute.UserProfileRoutes(student, db)
	feeRoute.FeeUserRoutes(student, db)
	paymentRoute.PaymentUserRoutes(student, db)
}
