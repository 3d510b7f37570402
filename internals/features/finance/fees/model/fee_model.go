package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUMS — fee status & type
// =========================================================

type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPaid    FeeStatus = "paid"
)

type FeeType string

const (
	FeeTypeTuition     FeeType = "tuition"
	FeeTypeHostel      FeeType = "hostel"
	FeeTypeTransport   FeeType = "transport"
	FeeTypeExamination FeeType = "examination"
	FeeTypeOther       FeeType = "other"
)

// DeriveStatus maps the cumulative completed payment total against the
// fee amount onto the status enum.
func DeriveStatus(totalPaid, amount float64) FeeStatus {
	switch {
	case totalPaid >= amount:
		return FeeStatusPaid
	case totalPaid > 0:
		return FeeStatusPartial
	default:
		return FeeStatusPending
	}
}

// =========================================================
// MODEL
// =========================================================

type FeeModel struct {
	FeeID uuid.UUID `gorm:"column:fee_id;type:uuid;primaryKey" json:"fee_id"`

	// FK → users(id)
	FeeStudentID uuid.UUID `gorm:"column:fee_student_id;type:uuid;not null;index:ix_fees_student" json:"fee_student_id"`

	FeeAmount   float64 `gorm:"column:fee_amount;not null;check:fee_amount > 0" json:"fee_amount"`
	FeeType     FeeType `gorm:"column:fee_type;type:varchar(20);not null" json:"fee_type"`
	FeeSemester int     `gorm:"column:fee_semester;not null;check:fee_semester >= 1 AND fee_semester <= 8" json:"fee_semester"`
	FeeDueDate  time.Time `gorm:"column:fee_due_date;not null" json:"fee_due_date"`

	// Derived from completed payments; see payments service.
	FeeStatus FeeStatus `gorm:"column:fee_status;type:varchar(10);not null;default:'pending';index:ix_fees_status" json:"fee_status"`

	FeeDescription *string    `gorm:"column:fee_description" json:"fee_description,omitempty"`
	FeeCreatedBy   *uuid.UUID `gorm:"column:fee_created_by;type:uuid" json:"fee_created_by,omitempty"`

	FeeCreatedAt time.Time      `gorm:"column:fee_created_at;autoCreateTime" json:"fee_created_at"`
	FeeUpdatedAt time.Time      `gorm:"column:fee_updated_at;autoUpdateTime" json:"fee_updated_at"`
	FeeDeletedAt gorm.DeletedAt `gorm:"column:fee_deleted_at;index" json:"-"`
}

func (FeeModel) TableName() string {
	return "fees"
}

func (m *FeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeID == uuid.Nil {
		m.FeeID = uuid.New()
	}
	if m.FeeStatus == "" {
		m.FeeStatus = FeeStatusPending
	}
	return nil
}

func ValidFeeType(t FeeType) bool {
	switch t {
	case FeeTypeTuition, FeeTypeHostel, FeeTypeTransport, FeeTypeExamination, FeeTypeOther:
		return true
	}
	return false
}

func ValidFeeStatus(s FeeStatus) bool {
	switch s {
	case FeeStatusPending, FeeStatusPartial, FeeStatusPaid:
		return true
	}
	return false
}
