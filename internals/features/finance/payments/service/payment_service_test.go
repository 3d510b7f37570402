package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/payments/dto"
	paymentModel "campusfee_backend/internals/features/finance/payments/model"
	"campusfee_backend/internals/testutil"
)

func payInput(amount float64) dto.PayFeeDTO {
	return dto.PayFeeDTO{
		Amount:        amount,
		PaymentMethod: paymentModel.PaymentMethodBankTransfer,
	}
}

func TestPayFeeFullAmountMarksPaid(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)

	payment, err := PayFee(db, student.ID, fee.FeeID, payInput(5000))
	require.NoError(t, err)

	assert.Equal(t, paymentModel.PaymentStatusCompleted, payment.PaymentStatus)
	assert.NotEmpty(t, payment.PaymentReceiptNumber)
	assert.False(t, payment.PaymentDate.IsZero())

	var got feeModel.FeeModel
	require.NoError(t, db.First(&got, "fee_id = ?", fee.FeeID).Error)
	assert.Equal(t, feeModel.FeeStatusPaid, got.FeeStatus)
}

func TestPayFeePartialAmountMarksPartial(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)

	_, err := PayFee(db, student.ID, fee.FeeID, payInput(2000))
	require.NoError(t, err)

	var got feeModel.FeeModel
	require.NoError(t, db.First(&got, "fee_id = ?", fee.FeeID).Error)
	assert.Equal(t, feeModel.FeeStatusPartial, got.FeeStatus)
}

func TestPayFeeCumulativePaymentsReachPaid(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)

	_, err := PayFee(db, student.ID, fee.FeeID, payInput(2000))
	require.NoError(t, err)
	_, err = PayFee(db, student.ID, fee.FeeID, payInput(3000))
	require.NoError(t, err)

	var got feeModel.FeeModel
	require.NoError(t, db.First(&got, "fee_id = ?", fee.FeeID).Error)
	assert.Equal(t, feeModel.FeeStatusPaid, got.FeeStatus)

	total, err := CompletedTotal(db, fee.FeeID)
	require.NoError(t, err)
	assert.InDelta(t, 5000, total, 0.001)
}

func TestPayFeeOverpaymentStaysPaid(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)

	_, err := PayFee(db, student.ID, fee.FeeID, payInput(6000))
	require.NoError(t, err)

	var got feeModel.FeeModel
	require.NoError(t, db.First(&got, "fee_id = ?", fee.FeeID).Error)
	assert.Equal(t, feeModel.FeeStatusPaid, got.FeeStatus)
}

func TestPayFeeUnknownFeeReturns404(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")

	_, err := PayFee(db, student.ID, uuid.New(), payInput(100))
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestPayFeeForeignFeeReturns403AndWritesNothing(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.NewStudent(t, db, "owner@campus.edu", "REG001")
	other := testutil.NewStudent(t, db, "other@campus.edu", "REG002")
	fee := testutil.NewFee(t, db, owner.ID, 5000)

	_, err := PayFee(db, other.ID, fee.FeeID, payInput(5000))
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)

	var count int64
	require.NoError(t, db.Model(&paymentModel.PaymentModel{}).Count(&count).Error)
	assert.Zero(t, count)

	var got feeModel.FeeModel
	require.NoError(t, db.First(&got, "fee_id = ?", fee.FeeID).Error)
	assert.Equal(t, feeModel.FeeStatusPending, got.FeeStatus)
}

func TestPayFeeStoresPaymentMeta(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)

	in := payInput(5000)
	in.Meta = map[string]interface{}{"gateway": "razorpay", "device": "android"}

	payment, err := PayFee(db, student.ID, fee.FeeID, in)
	require.NoError(t, err)

	var got paymentModel.PaymentModel
	require.NoError(t, db.First(&got, "payment_id = ?", payment.PaymentID).Error)
	assert.Equal(t, "razorpay", got.PaymentMeta["gateway"])
	assert.Equal(t, "android", got.PaymentMeta["device"])
}

func TestPayFeeWithoutMetaLeavesMetaEmpty(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)

	payment, err := PayFee(db, student.ID, fee.FeeID, payInput(5000))
	require.NoError(t, err)

	var got paymentModel.PaymentModel
	require.NoError(t, db.First(&got, "payment_id = ?", payment.PaymentID).Error)
	assert.Empty(t, got.PaymentMeta)
}

// postgresDialector reports the postgres driver name so the locking
// behavior can be checked without a live postgres.
type postgresDialector struct{ tests.DummyDialector }

func (postgresDialector) Name() string { return "postgres" }

func TestFeeForUpdateAddsRowLockOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgresDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	// two payments racing on the same fee must serialize on the fee row,
	// otherwise both can read the same prior total and derive the same
	// status from partial sums
	stmt := feeForUpdate(db.Session(&gorm.Session{NewDB: true})).Statement
	_, locked := stmt.Clauses["FOR"]
	assert.True(t, locked, "expected a FOR UPDATE clause on postgres")
}

func TestFeeForUpdateSkipsRowLockOnSQLite(t *testing.T) {
	db := testutil.OpenDB(t)

	stmt := feeForUpdate(db.Session(&gorm.Session{NewDB: true})).Statement
	_, locked := stmt.Clauses["FOR"]
	assert.False(t, locked, "sqlite does not support FOR UPDATE")
}

func TestPayFeeReceiptsAreUnique(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "a@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 50000)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		payment, err := PayFee(db, student.ID, fee.FeeID, payInput(100))
		require.NoError(t, err)
		require.NotEmpty(t, payment.PaymentReceiptNumber)
		assert.False(t, seen[payment.PaymentReceiptNumber], "receipt %s reused", payment.PaymentReceiptNumber)
		seen[payment.PaymentReceiptNumber] = true
	}
}
