package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	paymentDTO "campusfee_backend/internals/features/finance/payments/dto"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	paymentService "campusfee_backend/internals/features/finance/payments/service"
	"campusfee_backend/internals/testutil"
)

func cashPayment(amount float64) paymentDTO.PayFeeDTO {
	return paymentDTO.PayFeeDTO{
		Amount:        amount,
		PaymentMethod: paymentModel.PaymentMethodCash,
	}
}

func TestComputeEmptyDatabase(t *testing.T) {
	db := testutil.OpenDB(t)

	stats, err := Compute(db)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalStudents)
	assert.Zero(t, stats.TotalFees)
	assert.Zero(t, stats.TotalPayments)
	assert.Zero(t, stats.TotalPaid)
	assert.Empty(t, stats.FeesData)
}

func TestComputeDashboardCounters(t *testing.T) {
	db := testutil.OpenDB(t)

	// admins never count as students
	testutil.NewAdmin(t, db, "admin@campus.edu")

	s1 := testutil.NewStudent(t, db, "s1@campus.edu", "REG001")
	s2 := testutil.NewStudent(t, db, "s2@campus.edu", "REG002")
	testutil.NewStudent(t, db, "s3@campus.edu", "REG003")

	paidFee := testutil.NewFee(t, db, s1.ID, 2000)
	testutil.NewFee(t, db, s2.ID, 1000)

	_, err := paymentService.PayFee(db, s1.ID, paidFee.FeeID, cashPayment(2000))
	require.NoError(t, err)

	stats, err := Compute(db)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalStudents)
	assert.EqualValues(t, 2, stats.TotalFees)
	assert.EqualValues(t, 1, stats.TotalPayments)
	assert.InDelta(t, 2000, stats.TotalPaid, 0.001)

	byStatus := map[string]FeeStatusBreakdown{}
	for _, row := range stats.FeesData {
		byStatus[row.Status] = row
	}

	paid, ok := byStatus[string(feeModel.FeeStatusPaid)]
	require.True(t, ok, "expected a paid bucket, got %+v", stats.FeesData)
	assert.EqualValues(t, 1, paid.Count)
	assert.InDelta(t, 2000, paid.TotalAmount, 0.001)

	pending, ok := byStatus[string(feeModel.FeeStatusPending)]
	require.True(t, ok)
	assert.EqualValues(t, 1, pending.Count)
	assert.InDelta(t, 1000, pending.TotalAmount, 0.001)
}
