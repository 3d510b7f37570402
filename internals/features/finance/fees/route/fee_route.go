package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "campusfee_backend/internals/features/finance/fees/controller"
)

// FeeAdminRoutes mounts fee management on the admin group.
func FeeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := feeController.NewFeeAdminController(db)

	fees := r.Group("/fees")
	fees.Get("/", ctrl.List)
	fees.Get("/:id", ctrl.GetByID)
	fees.Put("/:id", ctrl.Update)
	fees.Delete("/:id", ctrl.Delete)
}

// FeeUserRoutes mounts the read-only fee views on the student group.
func FeeUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := feeController.NewFeeUserController(db)

	fees := r.Group("/fees")
	fees.Get("/", ctrl.ListMine)
	fees.Get("/:id", ctrl.GetMine)
}
