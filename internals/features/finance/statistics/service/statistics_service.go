package service

import (
	"gorm.io/gorm"

	"campusfee_backend/internals/constants"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	userModel "campusfee_backend/internals/features/users/user/model"
)

// FeeStatusBreakdown is one fee_status bucket on the admin dashboard.
type FeeStatusBreakdown struct {
	Status      string  `json:"status" gorm:"column:status"`
	Count       int64   `json:"count" gorm:"column:count"`
	TotalAmount float64 `json:"total_amount" gorm:"column:total_amount"`
}

// Statistics is the admin dashboard summary.
type Statistics struct {
	TotalStudents int64                `json:"total_students"`
	TotalFees     int64                `json:"total_fees"`
	TotalPayments int64                `json:"total_payments"`
	TotalPaid     float64              `json:"total_paid"`
	FeesData      []FeeStatusBreakdown `json:"fees_data"`
}

// Compute gathers the dashboard counters in a handful of aggregate
// queries; no per-row work.
func Compute(db *gorm.DB) (Statistics, error) {
	var out Statistics

	if err := db.Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleStudent).
		Count(&out.TotalStudents).Error; err != nil {
		return out, err
	}

	if err := db.Model(&feeModel.FeeModel{}).Count(&out.TotalFees).Error; err != nil {
		return out, err
	}

	if err := db.Model(&paymentModel.PaymentModel{}).Count(&out.TotalPayments).Error; err != nil {
		return out, err
	}

	if err := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_status = ?", paymentModel.PaymentStatusCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&out.TotalPaid).Error; err != nil {
		return out, err
	}

	out.FeesData = []FeeStatusBreakdown{}
	if err := db.Model(&feeModel.FeeModel{}).
		Select("fee_status AS status, COUNT(*) AS count, COALESCE(SUM(fee_amount), 0) AS total_amount").
		Group("fee_status").
		Order("fee_status").
		Scan(&out.FeesData).Error; err != nil {
		return out, err
	}

	return out, nil
}
