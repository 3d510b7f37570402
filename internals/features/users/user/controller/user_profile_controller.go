package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/features/users/user/dto"
	userModel "campusfee_backend/internals/features/users/user/model"
	helper "campusfee_backend/internals/helpers"
)

var validate = validator.New()

type UserProfileController struct {
	DB *gorm.DB
}

func NewUserProfileController(db *gorm.DB) *UserProfileController {
	return &UserProfileController{DB: db}
}

// Only the contact-ish fields are self-serve; registration number,
// course and semester stay admin-managed.
type profileUpdateInput struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address  *string `json:"address,omitempty"`
}

// GetProfile (GET /api/student/profile)
func (h *UserProfileController) GetProfile(c *fiber.Ctx) error {
	user, ferr := h.currentUser(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(*user))
}

// UpdateProfile (PUT /api/student/profile)
func (h *UserProfileController) UpdateProfile(c *fiber.Ctx) error {
	user, ferr := h.currentUser(c)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	var in profileUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if in.UserName != nil {
		user.UserName = strings.TrimSpace(*in.UserName)
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Address != nil {
		user.Address = in.Address
	}

	if err := h.DB.Save(user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonValidationError(c, map[string][]string{
				"email": {"email already in use"},
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Profile updated", dto.ToUserResponse(*user))
}

func (h *UserProfileController) currentUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return &user, nil
}
