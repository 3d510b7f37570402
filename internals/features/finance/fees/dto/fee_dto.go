package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
)

////////////////////////////////////////////////////////////////////////////////
// FEES — DTO
////////////////////////////////////////////////////////////////////////////////

type FeeCreateDTO struct {
	FeeAmount      float64 `json:"fee_amount" validate:"required,gt=0"`
	FeeType        string  `json:"fee_type" validate:"required,oneof=tuition hostel transport examination other"`
	FeeSemester    int     `json:"fee_semester" validate:"required,min=1,max=8"`
	FeeDueDate     string  `json:"fee_due_date" validate:"required"`
	FeeDescription *string `json:"fee_description,omitempty"`
}

// Update (partial) — admins may also override the derived status.
type FeeUpdateDTO struct {
	FeeAmount      *float64 `json:"fee_amount,omitempty" validate:"omitempty,gt=0"`
	FeeType        *string  `json:"fee_type,omitempty" validate:"omitempty,oneof=tuition hostel transport examination other"`
	FeeSemester    *int     `json:"fee_semester,omitempty" validate:"omitempty,min=1,max=8"`
	FeeDueDate     *string  `json:"fee_due_date,omitempty"`
	FeeDescription *string  `json:"fee_description,omitempty"`
	FeeStatus      *string  `json:"fee_status,omitempty" validate:"omitempty,oneof=pending partial paid"`
}

type FeeResponse struct {
	FeeID          uuid.UUID  `json:"fee_id"`
	FeeStudentID   uuid.UUID  `json:"fee_student_id"`
	FeeAmount      float64    `json:"fee_amount"`
	FeeType        string     `json:"fee_type"`
	FeeSemester    int        `json:"fee_semester"`
	FeeDueDate     time.Time  `json:"fee_due_date"`
	FeeStatus      string     `json:"fee_status"`
	FeeDescription *string    `json:"fee_description,omitempty"`
	FeeCreatedBy   *uuid.UUID `json:"fee_created_by,omitempty"`
	FeeCreatedAt   time.Time  `json:"fee_created_at"`
	FeeUpdatedAt   time.Time  `json:"fee_updated_at"`

	// populated on admin listings
	Student *FeeStudentSummary `json:"student,omitempty"`

	// populated on detail views
	AmountPaid *float64 `json:"amount_paid,omitempty"`
}

type FeeStudentSummary struct {
	ID                 uuid.UUID `json:"id"`
	UserName           string    `json:"user_name"`
	RegistrationNumber *string   `json:"registration_number,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToFeeResponse(m feeModel.FeeModel) FeeResponse {
	return FeeResponse{
		FeeID:          m.FeeID,
		FeeStudentID:   m.FeeStudentID,
		FeeAmount:      m.FeeAmount,
		FeeType:        string(m.FeeType),
		FeeSemester:    m.FeeSemester,
		FeeDueDate:     m.FeeDueDate,
		FeeStatus:      string(m.FeeStatus),
		FeeDescription: m.FeeDescription,
		FeeCreatedBy:   m.FeeCreatedBy,
		FeeCreatedAt:   m.FeeCreatedAt,
		FeeUpdatedAt:   m.FeeUpdatedAt,
	}
}

func ToFeeResponses(list []feeModel.FeeModel) []FeeResponse {
	out := make([]FeeResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeeResponse(m))
	}
	return out
}

func FeeCreateDTOToModel(d FeeCreateDTO, studentID uuid.UUID, createdBy *uuid.UUID) (feeModel.FeeModel, error) {
	due, err := ParseDueDate(d.FeeDueDate)
	if err != nil {
		return feeModel.FeeModel{}, err
	}
	return feeModel.FeeModel{
		FeeStudentID:   studentID,
		FeeAmount:      d.FeeAmount,
		FeeType:        feeModel.FeeType(d.FeeType),
		FeeSemester:    d.FeeSemester,
		FeeDueDate:     due,
		FeeStatus:      feeModel.FeeStatusPending,
		FeeDescription: d.FeeDescription,
		FeeCreatedBy:   createdBy,
	}, nil
}

// ApplyFeeUpdate applies the partial update to the model in place.
func ApplyFeeUpdate(m *feeModel.FeeModel, d FeeUpdateDTO) error {
	if d.FeeAmount != nil {
		m.FeeAmount = *d.FeeAmount
	}
	if d.FeeType != nil {
		m.FeeType = feeModel.FeeType(*d.FeeType)
	}
	if d.FeeSemester != nil {
		m.FeeSemester = *d.FeeSemester
	}
	if d.FeeDueDate != nil {
		due, err := ParseDueDate(*d.FeeDueDate)
		if err != nil {
			return err
		}
		m.FeeDueDate = due
	}
	if d.FeeDescription != nil {
		m.FeeDescription = d.FeeDescription
	}
	if d.FeeStatus != nil {
		m.FeeStatus = feeModel.FeeStatus(*d.FeeStatus)
	}
	return nil
}

// ParseDueDate accepts the SPA's date-only input as well as RFC3339.
func ParseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q, want YYYY-MM-DD or RFC3339", raw)
}
