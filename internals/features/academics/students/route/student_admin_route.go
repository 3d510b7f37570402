package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "campusfee_backend/internals/features/academics/students/controller"
	feeController "campusfee_backend/internals/features/finance/fees/controller"
)

// StudentAdminRoutes mounts the admin-side student management endpoints
// on an already-authenticated admin group.
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentAdminController(db)
	feeCtrl := feeController.NewFeeAdminController(db)

	students := r.Group("/students")
	students.Get("/", ctrl.List)
	students.Post("/", ctrl.Create)
	students.Get("/:id", ctrl.GetByID)
	students.Put("/:id", ctrl.Update)
	students.Delete("/:id", ctrl.Delete)

	// fee assignment lives under the student resource
	students.Post("/:id/fees", feeCtrl.CreateForStudent)
}
