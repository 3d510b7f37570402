package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	paymentModel "campusfee_backend/internals/features/finance/payments/model"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type PayFeeDTO struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=credit_card debit_card bank_transfer cash upi"`
	TransactionID *string `json:"transaction_id,omitempty" validate:"omitempty,max=100"`

	// free-form client context (gateway echo, device info, notes)
	Meta map[string]interface{} `json:"payment_meta,omitempty"`
}

type PaymentResponse struct {
	PaymentID            uuid.UUID `json:"payment_id"`
	PaymentStudentID     uuid.UUID `json:"payment_student_id"`
	PaymentFeeID         uuid.UUID `json:"payment_fee_id"`
	PaymentAmount        float64   `json:"payment_amount"`
	PaymentMethod        string    `json:"payment_method"`
	PaymentTransactionID *string   `json:"payment_transaction_id,omitempty"`
	PaymentDate          time.Time         `json:"payment_date"`
	PaymentStatus        string            `json:"payment_status"`
	PaymentReceiptNumber string            `json:"payment_receipt_number"`
	PaymentMeta          datatypes.JSONMap `json:"payment_meta,omitempty"`
	PaymentCreatedAt     time.Time         `json:"payment_created_at"`
}

// ReceiptResponse is the read-only receipt view handed to the SPA.
type ReceiptResponse struct {
	ReceiptNumber      string    `json:"receipt_number"`
	StudentName        string    `json:"student_name"`
	RegistrationNumber *string   `json:"registration_number,omitempty"`
	FeeType            string    `json:"fee_type"`
	Amount             float64   `json:"amount"`
	PaymentDate        time.Time `json:"payment_date"`
	PaymentMethod      string    `json:"payment_method"`
	TransactionID      *string   `json:"transaction_id,omitempty"`
	Status             string    `json:"status"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToPaymentResponse(m paymentModel.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentStudentID:     m.PaymentStudentID,
		PaymentFeeID:         m.PaymentFeeID,
		PaymentAmount:        m.PaymentAmount,
		PaymentMethod:        m.PaymentMethod,
		PaymentTransactionID: m.PaymentTransactionID,
		PaymentDate:          m.PaymentDate,
		PaymentStatus:        m.PaymentStatus,
		PaymentReceiptNumber: m.PaymentReceiptNumber,
		PaymentMeta:          m.PaymentMeta,
		PaymentCreatedAt:     m.PaymentCreatedAt,
	}
}

func ToPaymentResponses(list []paymentModel.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}
