package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/testutil"
)

func appAs(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})

	userCtrl := NewPaymentUserController(db)
	app.Post("/student/fees/:id/pay", userCtrl.PayFee)
	app.Get("/student/payments", userCtrl.History)
	app.Get("/student/payments/:id/receipt", userCtrl.Receipt)

	adminCtrl := NewPaymentAdminController(db)
	app.Get("/admin/payments", adminCtrl.List)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestPayFeeEndpoint(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "s@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)
	app := appAs(db, student.ID)

	status, body := request(t, app, "POST", "/student/fees/"+fee.FeeID.String()+"/pay", fiber.Map{
		"amount": 5000,
		"payment_method": "upi",
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

	data := body["data"].(map[string]any)
	assert.Equal(t, "completed", data["payment_status"])
	assert.NotEmpty(t, data["payment_receipt_number"])

	var got feeModel.FeeModel
	require.NoError(t, db.First(&got, "fee_id = ?", fee.FeeID).Error)
	assert.Equal(t, feeModel.FeeStatusPaid, got.FeeStatus)
}

func TestPayFeeEndpointRejectsBadMethod(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "s@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)
	app := appAs(db, student.ID)

	status, body := request(t, app, "POST", "/student/fees/"+fee.FeeID.String()+"/pay", fiber.Map{
		"amount": 5000,
		"payment_method": "cheque",
	})
	require.Equal(t, fiber.StatusBadRequest, status)

	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "payment_method")
}

func TestPayFeeEndpointRejectsNonPositiveAmount(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "s@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)
	app := appAs(db, student.ID)

	status, body := request(t, app, "POST", "/student/fees/"+fee.FeeID.String()+"/pay", fiber.Map{
		"amount": -10,
		"payment_method": "cash",
	})
	require.Equal(t, fiber.StatusBadRequest, status)

	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "amount")
}

func TestHistoryListsOwnPaymentsOnly(t *testing.T) {
	db := testutil.OpenDB(t)
	mine := testutil.NewStudent(t, db, "mine@campus.edu", "REG001")
	other := testutil.NewStudent(t, db, "other@campus.edu", "REG002")
	myFee := testutil.NewFee(t, db, mine.ID, 5000)
	otherFee := testutil.NewFee(t, db, other.ID, 5000)

	myApp := appAs(db, mine.ID)
	otherApp := appAs(db, other.ID)

	status, _ := request(t, myApp, "POST", "/student/fees/"+myFee.FeeID.String()+"/pay", fiber.Map{
		"amount": 1000,
		"payment_method": "cash",
	})
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = request(t, otherApp, "POST", "/student/fees/"+otherFee.FeeID.String()+"/pay", fiber.Map{
		"amount": 2000,
		"payment_method": "cash",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := request(t, myApp, "GET", "/student/payments", nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	row := data[0].(map[string]any)
	assert.InDelta(t, 1000, row["payment_amount"].(float64), 0.001)

	// admin ledger sees both
	status, body = request(t, myApp, "GET", "/admin/payments", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"].([]any), 2)
}

func TestReceiptOwnershipAndContent(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "s@campus.edu", "REG001")
	other := testutil.NewStudent(t, db, "other@campus.edu", "REG002")
	fee := testutil.NewFee(t, db, student.ID, 5000)
	app := appAs(db, student.ID)

	status, body := request(t, app, "POST", "/student/fees/"+fee.FeeID.String()+"/pay", fiber.Map{
		"amount":         5000,
		"payment_method": "bank_transfer",
		"transaction_id": "TXN-42",
	})
	require.Equal(t, fiber.StatusCreated, status)
	paymentID := body["data"].(map[string]any)["payment_id"].(string)

	status, body = request(t, app, "GET", "/student/payments/"+paymentID+"/receipt", nil)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Test Student", data["student_name"])
	assert.Equal(t, "REG001", data["registration_number"])
	assert.Equal(t, "tuition", data["fee_type"])
	assert.Equal(t, "TXN-42", data["transaction_id"])
	assert.InDelta(t, 5000, data["amount"].(float64), 0.001)

	// someone else's receipt is forbidden
	otherApp := appAs(db, other.ID)
	status, _ = request(t, otherApp, "GET", "/student/payments/"+paymentID+"/receipt", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// unknown payment id
	status, _ = request(t, app, "GET", "/student/payments/"+uuid.NewString()+"/receipt", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReceiptLookupByReceiptNumber(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "s@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)
	app := appAs(db, student.ID)

	status, body := request(t, app, "POST", "/student/fees/"+fee.FeeID.String()+"/pay", fiber.Map{
		"amount":         5000,
		"payment_method": "cash",
	})
	require.Equal(t, fiber.StatusCreated, status)
	receiptNumber := body["data"].(map[string]any)["payment_receipt_number"].(string)

	status, body = request(t, app, "GET", "/student/payments/"+receiptNumber+"/receipt", nil)
	require.Equal(t, fiber.StatusOK, status, "body: %v", body)
	assert.Equal(t, receiptNumber, body["data"].(map[string]any)["receipt_number"])

	// unknown receipt number
	status, _ = request(t, app, "GET", "/student/payments/RCP-0-0/receipt", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	// neither a uuid nor a receipt number
	status, _ = request(t, app, "GET", "/student/payments/not-a-receipt/receipt", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPayFeeEndpointEchoesPaymentMeta(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "s@campus.edu", "REG001")
	fee := testutil.NewFee(t, db, student.ID, 5000)
	app := appAs(db, student.ID)

	status, body := request(t, app, "POST", "/student/fees/"+fee.FeeID.String()+"/pay", fiber.Map{
		"amount":         5000,
		"payment_method": "upi",
		"payment_meta":   fiber.Map{"gateway": "razorpay"},
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

	meta := body["data"].(map[string]any)["payment_meta"].(map[string]any)
	assert.Equal(t, "razorpay", meta["gateway"])
}
