package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/features/finance/fees/dto"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	paymentService "campusfee_backend/internals/features/finance/payments/service"
	helper "campusfee_backend/internals/helpers"
)

type FeeUserController struct {
	DB *gorm.DB
}

func NewFeeUserController(db *gorm.DB) *FeeUserController {
	return &FeeUserController{DB: db}
}

// -----------------------------------------
// List own fees (GET /api/student/fees)
// -----------------------------------------
func (h *FeeUserController) ListMine(c *fiber.Ctx) error {
	studentID, ferr := currentStudentID(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	p := helper.ParseFiber(c, "due_date", "asc", helper.DefaultOpts)

	q := h.DB.Model(&feeModel.FeeModel{}).Where("fee_student_id = ?", studentID)
	if v := c.Query("status"); v != "" {
		if !feeModel.ValidFeeStatus(feeModel.FeeStatus(v)) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status filter")
		}
		q = q.Where("fee_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(feeSortable, "due_date")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []feeModel.FeeModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToFeeResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Own fee detail (GET /api/student/fees/:id)
// 404 for unknown ids, 403 for another student's fee.
// -----------------------------------------
func (h *FeeUserController) GetMine(c *fiber.Ctx) error {
	studentID, ferr := currentStudentID(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee id")
	}

	var fee feeModel.FeeModel
	if err := h.DB.First(&fee, "fee_id = ?", feeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if fee.FeeStudentID != studentID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to view this fee")
	}

	paid, err := paymentService.CompletedTotal(h.DB, fee.FeeID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ToFeeResponse(fee)
	resp.AmountPaid = &paid

	return helper.JsonOK(c, "ok", resp)
}

func currentStudentID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
