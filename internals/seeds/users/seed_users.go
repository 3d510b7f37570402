package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authService "campusfee_backend/internals/features/users/auth/service"
	"campusfee_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName           string  `json:"user_name"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	Role               string  `json:"role"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	Course             *string `json:"course,omitempty"`
	Semester           *int    `json:"semester,omitempty"`
}

// SeedUsersFromJSON inserts the users listed in the JSON file, skipping
// emails that already exist.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ cannot read user seed file %s: %v", filePath, err)
		return
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ cannot decode user seed file %s: %v", filePath, err)
		return
	}

	for _, data := range inputs {
		email := strings.ToLower(data.Email)

		var existing model.UserModel
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			continue
		}

		hashed, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ cannot hash seed password for %s: %v", email, err)
			continue
		}

		user := model.UserModel{
			ID:                 uuid.New(),
			UserName:           data.UserName,
			Email:              email,
			Password:           hashed,
			Role:               data.Role,
			RegistrationNumber: data.RegistrationNumber,
			Course:             data.Course,
			Semester:           data.Semester,
			IsActive:           true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ cannot seed user %s: %v", email, err)
			continue
		}
		log.Printf("✅ seeded user %s (%s)", email, user.Role)
	}
}
