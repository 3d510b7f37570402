package service

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campusfee_backend/internals/configs"
	"campusfee_backend/internals/constants"
	userModel "campusfee_backend/internals/features/users/user/model"
	"campusfee_backend/internals/testutil"
)

func init() {
	configs.JWTSecret = "test-secret"
}

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)

	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error { return Register(db, c) })
	app.Post("/login", func(c *fiber.Ctx) error { return Login(db, c) })
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPasswordHash(hash, "s3cret-pass"))
	assert.Error(t, CheckPasswordHash(hash, "wrong-pass"))
}

func TestCreateAccessTokenCarriesExpiry(t *testing.T) {
	user := &userModel.UserModel{UserName: "Someone", Role: constants.RoleStudent}

	token, err := CreateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	exp := TokenExpiry(token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)
}

func TestRegisterCreatesStudentAndIssuesToken(t *testing.T) {
	app, db := newAuthApp(t)

	status, body := postJSON(t, app, "/register", fiber.Map{
		"user_name": "New Student",
		"email":     "NEW.Student@Campus.edu",
		"password":  "secret123",
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	var user userModel.UserModel
	require.NoError(t, db.First(&user, "email = ?", "new.student@campus.edu").Error)
	assert.Equal(t, constants.RoleStudent, user.Role)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestRegisterDuplicateEmailNamesField(t *testing.T) {
	app, _ := newAuthApp(t)

	payload := fiber.Map{
		"user_name": "New Student",
		"email":     "dup@campus.edu",
		"password":  "secret123",
	}
	status, _ := postJSON(t, app, "/register", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := postJSON(t, app, "/register", payload)
	require.Equal(t, fiber.StatusBadRequest, status)

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "body: %v", body)
	assert.Contains(t, errs, "email")
}

func TestLoginFlow(t *testing.T) {
	app, db := newAuthApp(t)

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	student := userModel.UserModel{
		UserName: "Login Student",
		Email:    "login@campus.edu",
		Password: hash,
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	require.NoError(t, db.Create(&student).Error)

	status, body := postJSON(t, app, "/login", fiber.Map{
		"email":    "Login@Campus.edu",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, status, "body: %v", body)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	// wrong password
	status, _ = postJSON(t, app, "/login", fiber.Map{
		"email":    "login@campus.edu",
		"password": "nope",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// deactivated account
	require.NoError(t, db.Model(&student).Update("is_active", false).Error)
	status, _ = postJSON(t, app, "/login", fiber.Map{
		"email":    "login@campus.edu",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}
