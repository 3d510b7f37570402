package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/features/finance/payments/dto"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	helper "campusfee_backend/internals/helpers"
)

type PaymentAdminController struct {
	DB *gorm.DB
}

func NewPaymentAdminController(db *gorm.DB) *PaymentAdminController {
	return &PaymentAdminController{DB: db}
}

var paymentSortable = map[string]string{
	"payment_date": "payment_date",
	"created_at":   "payment_created_at",
	"amount":       "payment_amount",
	"method":       "payment_method",
}

// -----------------------------------------
// List (GET /api/admin/payments)
// Query filters: student_id, fee_id, method; newest first by default.
// -----------------------------------------
func (h *PaymentAdminController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "payment_date", "desc", helper.AdminOpts)

	q := h.DB.Model(&paymentModel.PaymentModel{})

	if v := c.Query("student_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_student_id = ?", id)
		}
	}
	if v := c.Query("fee_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_fee_id = ?", id)
		}
	}
	if v := c.Query("method"); v != "" {
		if !paymentModel.ValidPaymentMethod(v) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid method filter")
		}
		q = q.Where("payment_method = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(paymentSortable, "payment_date")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []paymentModel.PaymentModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToPaymentResponses(list), helper.BuildMeta(total, p))
}
