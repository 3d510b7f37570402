package dto

import (
	userModel "campusfee_backend/internals/features/users/user/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENTS — DTO (admin side)
////////////////////////////////////////////////////////////////////////////////

type StudentCreateDTO struct {
	UserName           string  `json:"user_name" validate:"required,min=2,max=100"`
	Email              string  `json:"email" validate:"required,email,max=255"`
	Password           string  `json:"password" validate:"required,min=8,max=72"`
	RegistrationNumber string  `json:"registration_number" validate:"required,max=50"`
	Course             string  `json:"course" validate:"required,max=120"`
	Semester           int     `json:"semester" validate:"required,min=1,max=8"`
	Phone              *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address            *string `json:"address,omitempty"`
}

// Update (partial). Password is intentionally absent; resets go through
// the auth change-password flow.
type StudentUpdateDTO struct {
	UserName           *string `json:"user_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	RegistrationNumber *string `json:"registration_number,omitempty" validate:"omitempty,max=50"`
	Course             *string `json:"course,omitempty" validate:"omitempty,max=120"`
	Semester           *int    `json:"semester,omitempty" validate:"omitempty,min=1,max=8"`
	Phone              *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address            *string `json:"address,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

func ApplyStudentUpdate(m *userModel.UserModel, d StudentUpdateDTO) {
	if d.UserName != nil {
		m.UserName = *d.UserName
	}
	if d.Email != nil {
		m.Email = *d.Email
	}
	if d.RegistrationNumber != nil {
		m.RegistrationNumber = d.RegistrationNumber
	}
	if d.Course != nil {
		m.Course = d.Course
	}
	if d.Semester != nil {
		m.Semester = d.Semester
	}
	if d.Phone != nil {
		m.Phone = d.Phone
	}
	if d.Address != nil {
		m.Address = d.Address
	}
	if d.IsActive != nil {
		m.IsActive = *d.IsActive
	}
}
