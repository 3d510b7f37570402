package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/payments/dto"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	helper "campusfee_backend/internals/helpers"
)

const receiptInsertAttempts = 3

// PayFee records a completed payment against a fee and re-derives the fee
// status from the cumulative completed total, all inside one transaction
// so a crash can never leave a payment behind a stale fee status.
//
// Errors come back as *fiber.Error with the right status: 404 unknown fee,
// 403 foreign fee, 500 otherwise.
func PayFee(db *gorm.DB, studentID, feeID uuid.UUID, in dto.PayFeeDTO) (paymentModel.PaymentModel, error) {
	var payment paymentModel.PaymentModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var fee feeModel.FeeModel
		if err := feeForUpdate(tx).First(&fee, "fee_id = ?", feeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Fee not found")
			}
			return err
		}
		if fee.FeeStudentID != studentID {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized to pay this fee")
		}

		payment = paymentModel.PaymentModel{
			PaymentStudentID:     studentID,
			PaymentFeeID:         fee.FeeID,
			PaymentAmount:        in.Amount,
			PaymentMethod:        in.PaymentMethod,
			PaymentTransactionID: in.TransactionID,
			PaymentStatus:        paymentModel.PaymentStatusCompleted,
			PaymentMeta:          datatypes.JSONMap(in.Meta),
		}

		if err := insertWithReceiptRetry(tx, &payment); err != nil {
			return err
		}

		return RefreshFeeStatus(tx, &fee)
	})

	return payment, err
}

// feeForUpdate loads fees under a row lock so concurrent payments
// against the same fee serialize and the status recompute sees every
// committed row. sqlite rejects FOR UPDATE; its single writer already
// serializes the transaction.
func feeForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// insertWithReceiptRetry regenerates the receipt number and retries when
// the unique index rejects a collision. Each attempt runs in a savepoint
// so the surrounding transaction survives the failed insert.
func insertWithReceiptRetry(tx *gorm.DB, payment *paymentModel.PaymentModel) error {
	var lastErr error
	for attempt := 0; attempt < receiptInsertAttempts; attempt++ {
		payment.PaymentReceiptNumber = GenerateReceiptNumber()
		lastErr = tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(payment).Error
		})
		if lastErr == nil {
			return nil
		}
		if !helper.IsUniqueViolation(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// RefreshFeeStatus recomputes the fee status from the sum of completed
// payments and persists it when it changed.
func RefreshFeeStatus(tx *gorm.DB, fee *feeModel.FeeModel) error {
	var totalPaid float64
	err := tx.Model(&paymentModel.PaymentModel{}).
		Where("payment_fee_id = ? AND payment_status = ?", fee.FeeID, paymentModel.PaymentStatusCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&totalPaid).Error
	if err != nil {
		return err
	}

	newStatus := feeModel.DeriveStatus(totalPaid, fee.FeeAmount)
	if newStatus == fee.FeeStatus {
		return nil
	}
	fee.FeeStatus = newStatus
	return tx.Model(&feeModel.FeeModel{}).
		Where("fee_id = ?", fee.FeeID).
		Update("fee_status", newStatus).Error
}

// CompletedTotal returns the completed payment total recorded against a
// fee; used by fee detail views.
func CompletedTotal(db *gorm.DB, feeID uuid.UUID) (float64, error) {
	var total float64
	err := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_fee_id = ? AND payment_status = ?", feeID, paymentModel.PaymentStatusCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&total).Error
	return total, err
}
