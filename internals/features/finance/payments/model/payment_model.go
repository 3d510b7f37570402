package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodUPI          = "upi"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	// FK → users(id) / fees(fee_id)
	PaymentStudentID uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index:ix_payments_student" json:"payment_student_id"`
	PaymentFeeID     uuid.UUID `gorm:"column:payment_fee_id;type:uuid;not null;index:ix_payments_fee" json:"payment_fee_id"`

	PaymentAmount float64 `gorm:"column:payment_amount;not null;check:payment_amount > 0" json:"payment_amount"`
	PaymentMethod string  `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`

	// free text reference from the payer's side (bank ref, UPI id, ...)
	PaymentTransactionID *string `gorm:"column:payment_transaction_id" json:"payment_transaction_id,omitempty"`

	PaymentDate time.Time `gorm:"column:payment_date;not null;index:ix_payments_date" json:"payment_date"`

	// No gateway behind this system; recorded payments are completed.
	PaymentStatus string `gorm:"column:payment_status;type:varchar(20);not null;default:'completed'" json:"payment_status"`

	// Generated once at creation, immutable, unique across the table.
	PaymentReceiptNumber string `gorm:"column:payment_receipt_number;size:40;uniqueIndex:uniq_payments_receipt_number;not null" json:"payment_receipt_number"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentStatusCompleted
	}
	return nil
}

func (p *PaymentModel) IsCompleted() bool {
	return p.PaymentStatus == PaymentStatusCompleted
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodUPI:
		return true
	}
	return false
}
