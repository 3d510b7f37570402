package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/payments/dto"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	"campusfee_backend/internals/features/finance/payments/service"
	userModel "campusfee_backend/internals/features/users/user/model"
	helper "campusfee_backend/internals/helpers"
)

var validate = validator.New()

type PaymentUserController struct {
	DB *gorm.DB
}

func NewPaymentUserController(db *gorm.DB) *PaymentUserController {
	return &PaymentUserController{DB: db}
}

// -----------------------------------------
// Pay a fee (POST /api/student/fees/:id/pay)
// -----------------------------------------
func (h *PaymentUserController) PayFee(c *fiber.Ctx) error {
	studentID, ferr := currentStudentID(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee id")
	}

	var in dto.PayFeeDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	payment, err := service.PayFee(h.DB, studentID, feeID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Payment recorded", dto.ToPaymentResponse(payment))
}

// -----------------------------------------
// Own payment history (GET /api/student/payments), newest first
// -----------------------------------------
func (h *PaymentUserController) History(c *fiber.Ctx) error {
	studentID, ferr := currentStudentID(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	p := helper.ParseFiber(c, "payment_date", "desc", helper.DefaultOpts)

	q := h.DB.Model(&paymentModel.PaymentModel{}).Where("payment_student_id = ?", studentID)

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

// -----------------------------------------
// Receipt view (GET /api/student/payments/:id/receipt)
// :id is the payment id, or the receipt number printed on the receipt.
// -----------------------------------------
func (h *PaymentUserController) Receipt(c *fiber.Ctx) error {
	studentID, ferr := currentStudentID(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	ref := c.Params("id")
	lookup := h.DB
	if paymentID, err := uuid.Parse(ref); err == nil {
		lookup = lookup.Where("payment_id = ?", paymentID)
	} else if service.LooksLikeReceiptNumber(ref) {
		lookup = lookup.Where("payment_receipt_number = ?", ref)
	} else {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	var payment paymentModel.PaymentModel
	if err := lookup.First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if payment.PaymentStudentID != studentID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to view this receipt")
	}

	var student userModel.UserModel
	if err := h.DB.First(&student, "id = ?", payment.PaymentStudentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var fee feeModel.FeeModel
	feeType := ""
	if err := h.DB.Unscoped().First(&fee, "fee_id = ?", payment.PaymentFeeID).Error; err == nil {
		feeType = string(fee.FeeType)
	}

	resp := dto.ReceiptResponse{
		ReceiptNumber:      payment.PaymentReceiptNumber,
		StudentName:        student.UserName,
		RegistrationNumber: student.RegistrationNumber,
		FeeType:            feeType,
		Amount:             payment.PaymentAmount,
		PaymentDate:        payment.PaymentDate,
		PaymentMethod:      payment.PaymentMethod,
		TransactionID:      payment.PaymentTransactionID,
		Status:             payment.PaymentStatus,
	}

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
