package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "campusfee_backend/internals/features/finance/payments/controller"
)

// PaymentAdminRoutes mounts the payment ledger on the admin group.
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentAdminController(db)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.List)
}

// PaymentUserRoutes mounts paying and receipt views on the student group.
// The pay endpoint hangs off /fees/:id so it reads as an action on the fee.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentUserController(db)

	r.Post("/fees/:id/pay", ctrl.PayFee)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.History)
	payments.Get("/:id/receipt", ctrl.Receipt)
}
