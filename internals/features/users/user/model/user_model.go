package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusfee_backend/internals/constants"
)

// UserModel represents the users table. Admins and students live in the
// same table; the student-only columns are nullable.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:100;not null" json:"user_name"`
	Email    string    `gorm:"size:255;uniqueIndex:uniq_users_email;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	RegistrationNumber *string `gorm:"size:50;uniqueIndex:uniq_users_registration_number" json:"registration_number,omitempty"`
	Course             *string `gorm:"size:120" json:"course,omitempty"`
	Semester           *int    `gorm:"check:semester >= 1 AND semester <= 8" json:"semester,omitempty"`
	Phone              *string `gorm:"size:30" json:"phone,omitempty"`
	Address            *string `json:"address,omitempty"`

	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
	return nil
}

func (u *UserModel) IsStudent() bool {
	return u.Role == constants.RoleStudent
}

func (u *UserModel) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
