package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "campusfee_backend/internals/features/users/user/model"
)

// UserResponse is the safe projection of UserModel (no password hash).
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserName           string    `json:"user_name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	RegistrationNumber *string   `json:"registration_number,omitempty"`
	Course             *string   `json:"course,omitempty"`
	Semester           *int      `json:"semester,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	Address            *string   `json:"address,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToUserResponse(m userModel.UserModel) UserResponse {
	return UserResponse{
		ID:                 m.ID,
		UserName:           m.UserName,
		Email:              m.Email,
		Role:               m.Role,
		RegistrationNumber: m.RegistrationNumber,
		Course:             m.Course,
		Semester:           m.Semester,
		Phone:              m.Phone,
		Address:            m.Address,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
	}
}

func ToUserResponses(list []userModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToUserResponse(m))
	}
	return out
}
