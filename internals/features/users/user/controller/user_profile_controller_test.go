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

	"campusfee_backend/internals/testutil"
)

func profileApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})

	ctrl := NewUserProfileController(db)
	app.Get("/profile", ctrl.GetProfile)
	app.Put("/profile", ctrl.UpdateProfile)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
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

func TestGetProfile(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "me@campus.edu", "REG001")
	app := profileApp(db, student.ID)

	status, body := call(t, app, "GET", "/profile", nil)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "me@campus.edu", data["email"])
	assert.Equal(t, "REG001", data["registration_number"])
	assert.NotContains(t, data, "password")
}

func TestUpdateProfileContactFields(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "me@campus.edu", "REG001")
	app := profileApp(db, student.ID)

	status, body := call(t, app, "PUT", "/profile", fiber.Map{
		"user_name": "Renamed Me",
		"phone":     "+91-99999-11111",
		"address":   "Hostel Block C",
	})
	require.Equal(t, fiber.StatusOK, status, "body: %v", body)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Renamed Me", data["user_name"])
	assert.Equal(t, "+91-99999-11111", data["phone"])
	assert.Equal(t, "Hostel Block C", data["address"])

	// registration data stays admin-managed
	assert.Equal(t, "REG001", data["registration_number"])
}

func TestUpdateProfileEmail(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "me@campus.edu", "REG001")
	testutil.NewStudent(t, db, "taken@campus.edu", "REG002")
	app := profileApp(db, student.ID)

	status, body := call(t, app, "PUT", "/profile", fiber.Map{"email": "New.Me@Campus.edu"})
	require.Equal(t, fiber.StatusOK, status, "body: %v", body)
	assert.Equal(t, "new.me@campus.edu", body["data"].(map[string]any)["email"])

	status, body = call(t, app, "PUT", "/profile", fiber.Map{"email": "taken@campus.edu"})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["errors"].(map[string]any), "email")
}

func TestUpdateProfileValidatesName(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.NewStudent(t, db, "me@campus.edu", "REG001")
	app := profileApp(db, student.ID)

	status, body := call(t, app, "PUT", "/profile", fiber.Map{"user_name": "x"})
	require.Equal(t, fiber.StatusBadRequest, status)

	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "user_name")
}
