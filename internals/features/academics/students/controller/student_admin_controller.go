package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/constants"
	"campusfee_backend/internals/features/academics/students/dto"
	authService "campusfee_backend/internals/features/users/auth/service"
	userDTO "campusfee_backend/internals/features/users/user/dto"
	userModel "campusfee_backend/internals/features/users/user/model"
	helper "campusfee_backend/internals/helpers"
)

var validate = validator.New()

type StudentAdminController struct {
	DB *gorm.DB
}

func NewStudentAdminController(db *gorm.DB) *StudentAdminController {
	return &StudentAdminController{DB: db}
}

var studentSortable = map[string]string{
	"created_at":          "created_at",
	"user_name":           "user_name",
	"email":               "email",
	"registration_number": "registration_number",
	"semester":            "semester",
}

// -----------------------------------------
// List (GET /api/admin/students)
// search matches name, email or registration number.
// -----------------------------------------
func (h *StudentAdminController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&userModel.UserModel{}).Where("role = ?", constants.RoleStudent)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(user_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(registration_number) LIKE ?",
			like, like, like,
		)
	}
	if v := c.Query("is_active"); v == "true" || v == "false" {
		q = q.Where("is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(studentSortable, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []userModel.UserModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", userDTO.ToUserResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /api/admin/students)
// -----------------------------------------
func (h *StudentAdminController) Create(c *fiber.Ctx) error {
	var in dto.StudentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	hashed, err := authService.HashPassword(in.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	regNo := strings.TrimSpace(in.RegistrationNumber)
	course := strings.TrimSpace(in.Course)
	semester := in.Semester

	student := userModel.UserModel{
		UserName:           strings.TrimSpace(in.UserName),
		Email:              strings.ToLower(strings.TrimSpace(in.Email)),
		Password:           hashed,
		Role:               constants.RoleStudent,
		RegistrationNumber: &regNo,
		Course:             &course,
		Semester:           &semester,
		Phone:              in.Phone,
		Address:            in.Address,
		IsActive:           true,
	}

	if err := h.DB.Create(&student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return duplicateFieldError(c, err)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Student created", userDTO.ToUserResponse(student))
}

// -----------------------------------------
// Detail (GET /api/admin/students/:id)
// -----------------------------------------
func (h *StudentAdminController) GetByID(c *fiber.Ctx) error {
	student, ferr := h.findStudent(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "ok", userDTO.ToUserResponse(*student))
}

// -----------------------------------------
// Update (PUT /api/admin/students/:id)
// -----------------------------------------
func (h *StudentAdminController) Update(c *fiber.Ctx) error {
	student, ferr := h.findStudent(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	var in dto.StudentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if in.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &lowered
	}

	dto.ApplyStudentUpdate(student, in)

	if err := h.DB.Save(student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return duplicateFieldError(c, err)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Student updated", userDTO.ToUserResponse(*student))
}

// -----------------------------------------
// Delete (DELETE /api/admin/students/:id) — soft delete
// -----------------------------------------
func (h *StudentAdminController) Delete(c *fiber.Ctx) error {
	student, ferr := h.findStudent(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if err := h.DB.Delete(student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": student.ID})
}

// findStudent loads the :id path param as a student row; admins and other
// roles come back as 404 so the endpoint never leaks non-student accounts.
func (h *StudentAdminController) findStudent(c *fiber.Ctx) (*userModel.UserModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid student id")
	}

	var student userModel.UserModel
	if err := h.DB.First(&student, "id = ? AND role = ?", id, constants.RoleStudent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, err
	}
	return &student, nil
}

func duplicateFieldError(c *fiber.Ctx, err error) error {
	field := helper.UniqueViolationColumn(err)
	if field == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "duplicate value")
	}
	return helper.JsonValidationError(c, map[string][]string{
		field: {field + " already in use"},
	})
}
