// Package testutil opens throwaway in-memory databases for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusfee_backend/internals/constants"
	database "campusfee_backend/internals/databases"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	userModel "campusfee_backend/internals/features/users/user/model"
)

// OpenDB returns a migrated in-memory database. Max one open connection,
// otherwise every pooled connection would see its own empty :memory: db.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// NewStudent inserts a student row with the given email and registration
// number.
func NewStudent(t *testing.T, db *gorm.DB, email, regNo string) userModel.UserModel {
	t.Helper()

	course := "Computer Science"
	semester := 3
	student := userModel.UserModel{
		UserName:           "Test Student",
		Email:              email,
		Password:           "not-a-real-hash",
		Role:               constants.RoleStudent,
		RegistrationNumber: &regNo,
		Course:             &course,
		Semester:           &semester,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

// NewAdmin inserts an admin row.
func NewAdmin(t *testing.T, db *gorm.DB, email string) userModel.UserModel {
	t.Helper()

	admin := userModel.UserModel{
		UserName: "Test Admin",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

// NewFee inserts a pending tuition fee for the student.
func NewFee(t *testing.T, db *gorm.DB, studentID uuid.UUID, amount float64) feeModel.FeeModel {
	t.Helper()

	fee := feeModel.FeeModel{
		FeeStudentID: studentID,
		FeeAmount:    amount,
		FeeType:      feeModel.FeeTypeTuition,
		FeeSemester:  3,
		FeeDueDate:   time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(&fee).Error)
	return fee
}
