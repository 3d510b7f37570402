package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/constants"
	"campusfee_backend/internals/features/finance/fees/dto"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	userModel "campusfee_backend/internals/features/users/user/model"
	helper "campusfee_backend/internals/helpers"
)

var validate = validator.New()

type FeeAdminController struct {
	DB *gorm.DB
}

func NewFeeAdminController(db *gorm.DB) *FeeAdminController {
	return &FeeAdminController{DB: db}
}

var feeSortable = map[string]string{
	"created_at": "fee_created_at",
	"updated_at": "fee_updated_at",
	"amount":     "fee_amount",
	"due_date":   "fee_due_date",
	"status":     "fee_status",
	"semester":   "fee_semester",
}

// -----------------------------------------
// List (GET /api/admin/fees)
// Query filters: student_id, status, fee_type, semester,
// sort_by (created_at|updated_at|amount|due_date|status|semester), order,
// page, per_page
// -----------------------------------------
func (h *FeeAdminController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&feeModel.FeeModel{})

	if v := c.Query("student_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("fee_student_id = ?", id)
		}
	}
	if v := c.Query("status"); v != "" {
		if !feeModel.ValidFeeStatus(feeModel.FeeStatus(v)) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status filter")
		}
		q = q.Where("fee_status = ?", v)
	}
	if v := c.Query("fee_type"); v != "" {
		if !feeModel.ValidFeeType(feeModel.FeeType(v)) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee_type filter")
		}
		q = q.Where("fee_type = ?", v)
	}
	if v := c.Query("semester"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 8 {
			q = q.Where("fee_semester = ?", n)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(feeSortable, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []feeModel.FeeModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ToFeeResponses(list)
	attachStudentSummaries(h.DB, resp)

	return helper.JsonList(c, "ok", resp, helper.BuildMeta(total, p))
}

// -----------------------------------------
// Detail (GET /api/admin/fees/:id)
// -----------------------------------------
func (h *FeeAdminController) GetByID(c *fiber.Ctx) error {
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

	resp := []dto.FeeResponse{dto.ToFeeResponse(fee)}
	attachStudentSummaries(h.DB, resp)

	return helper.JsonOK(c, "ok", resp[0])
}

// -----------------------------------------
// Create for student (POST /api/admin/students/:id/fees)
// -----------------------------------------
func (h *FeeAdminController) CreateForStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var student userModel.UserModel
	if err := h.DB.First(&student, "id = ? AND role = ?", studentID, constants.RoleStudent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var in dto.FeeCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	createdBy := adminIDFromLocals(c)
	fee, err := dto.FeeCreateDTOToModel(in, student.ID, createdBy)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.DB.Create(&fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Fee created", dto.ToFeeResponse(fee))
}

// -----------------------------------------
// Update (PUT /api/admin/fees/:id)
// -----------------------------------------
func (h *FeeAdminController) Update(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee id")
	}

	var in dto.FeeUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var fee feeModel.FeeModel
	if err := h.DB.First(&fee, "fee_id = ?", feeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := dto.ApplyFeeUpdate(&fee, in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.DB.Save(&fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Fee updated", dto.ToFeeResponse(fee))
}

// -----------------------------------------
// Delete (DELETE /api/admin/fees/:id)
// Refused while completed payments reference the fee.
// -----------------------------------------
func (h *FeeAdminController) Delete(c *fiber.Ctx) error {
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

	var paymentCount int64
	if err := h.DB.Model(&paymentModel.PaymentModel{}).
		Where("payment_fee_id = ? AND payment_status = ?", feeID, paymentModel.PaymentStatusCompleted).
		Count(&paymentCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if paymentCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Fee has recorded payments and cannot be deleted")
	}

	if err := h.DB.Delete(&fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Fee deleted", fiber.Map{"fee_id": fee.FeeID})
}

// attachStudentSummaries resolves the student name/registration for admin
// fee listings in one query instead of per row.
func attachStudentSummaries(db *gorm.DB, fees []dto.FeeResponse) {
	if len(fees) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(fees))
	seen := map[uuid.UUID]struct{}{}
	for _, f := range fees {
		if _, ok := seen[f.FeeStudentID]; !ok {
			seen[f.FeeStudentID] = struct{}{}
			ids = append(ids, f.FeeStudentID)
		}
	}

	var students []userModel.UserModel
	if err := db.Select("id", "user_name", "registration_number").
		Where("id IN ?", ids).
		Find(&students).Error; err != nil {
		return
	}
	byID := make(map[uuid.UUID]userModel.UserModel, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	for i := range fees {
		if s, ok := byID[fees[i].FeeStudentID]; ok {
			fees[i].Student = &dto.FeeStudentSummary{
				ID:                 s.ID,
				UserName:           s.UserName,
				RegistrationNumber: s.RegistrationNumber,
			}
		}
	}
}

func adminIDFromLocals(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
