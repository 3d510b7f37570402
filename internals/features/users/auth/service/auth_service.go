package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/constants"
	authModel "campusfee_backend/internals/features/users/auth/model"
	userDTO "campusfee_backend/internals/features/users/user/dto"
	userModel "campusfee_backend/internals/features/users/user/model"
	helper "campusfee_backend/internals/helpers"
)

var validate = validator.New()

type registerInput struct {
	UserName           string  `json:"user_name" validate:"required,min=3,max=100"`
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=6"`
	RegistrationNumber *string `json:"registration_number,omitempty" validate:"omitempty,max=50"`
	Course             *string `json:"course,omitempty" validate:"omitempty,max=120"`
	Semester           *int    `json:"semester,omitempty" validate:"omitempty,min=1,max=8"`
	Phone              *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address            *string `json:"address,omitempty"`
}

// Register creates a student account. The role is forced to student; admin
// accounts are created by other admins.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var in registerInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName:           in.UserName,
		Email:              strings.ToLower(strings.TrimSpace(in.Email)),
		Password:           hashed,
		Role:               constants.RoleStudent,
		RegistrationNumber: in.RegistrationNumber,
		Course:             in.Course,
		Semester:           in.Semester,
		Phone:              in.Phone,
		Address:            in.Address,
	}
	if err := db.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			field := helper.UniqueViolationColumn(err)
			if field == "" {
				field = "email"
			}
			return helper.JsonValidationError(c, map[string][]string{
				field: {field + " already exists"},
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := CreateAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonCreated(c, "Registered", fiber.Map{
		"token": token,
		"user":  userDTO.ToUserResponse(user),
	})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var user userModel.UserModel
	err := db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(in.Email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := CheckPasswordHash(user.Password, in.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := CreateAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Logged in", fiber.Map{
		"token": token,
		"user":  userDTO.ToUserResponse(user),
	})
}

// Logout blacklists the presented token until its natural expiry.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tokenString, ok := c.Locals("token_string").(string)
	if !ok || tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	entry := authModel.TokenBlacklist{
		Token:     tokenString,
		ExpiresAt: TokenExpiry(tokenString),
	}
	if err := db.Create(&entry).Error; err != nil && !helper.IsUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}

	return helper.JsonOK(c, "Logged out", nil)
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var in changePasswordInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	userID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if err := CheckPasswordHash(user.Password, in.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}

	newHash, err := HashPassword(in.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", newHash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing user_id in context")
	}
	return uuid.Parse(raw)
}

