package finance

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	feeDTO "campusfee_backend/internals/features/finance/fees/dto"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	userModel "campusfee_backend/internals/features/users/user/model"
)

type FeeSeed struct {
	RegistrationNumber string  `json:"registration_number"`
	FeeAmount          float64 `json:"fee_amount"`
	FeeType            string  `json:"fee_type"`
	FeeSemester        int     `json:"fee_semester"`
	FeeDueDate         string  `json:"fee_due_date"`
	FeeDescription     *string `json:"fee_description,omitempty"`
}

// SeedFeesFromJSON assigns fees to seeded students, keyed by registration
// number. A student with any existing fee of the same type and semester is
// skipped.
func SeedFeesFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ cannot read fee seed file %s: %v", filePath, err)
		return
	}

	var inputs []FeeSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ cannot decode fee seed file %s: %v", filePath, err)
		return
	}

	for _, data := range inputs {
		var student userModel.UserModel
		if err := db.Where("registration_number = ?", data.RegistrationNumber).First(&student).Error; err != nil {
			log.Printf("❌ fee seed: no student with registration %s", data.RegistrationNumber)
			continue
		}

		var count int64
		db.Model(&feeModel.FeeModel{}).
			Where("fee_student_id = ? AND fee_type = ? AND fee_semester = ?", student.ID, data.FeeType, data.FeeSemester).
			Count(&count)
		if count > 0 {
			continue
		}

		due, err := feeDTO.ParseDueDate(data.FeeDueDate)
		if err != nil {
			log.Printf("❌ fee seed: bad due date %q: %v", data.FeeDueDate, err)
			continue
		}

		fee := feeModel.FeeModel{
			FeeStudentID:   student.ID,
			FeeAmount:      data.FeeAmount,
			FeeType:        feeModel.FeeType(data.FeeType),
			FeeSemester:    data.FeeSemester,
			FeeDueDate:     due,
			FeeStatus:      feeModel.FeeStatusPending,
			FeeDescription: data.FeeDescription,
		}
		if err := db.Create(&fee).Error; err != nil {
			log.Printf("❌ cannot seed fee for %s: %v", data.RegistrationNumber, err)
			continue
		}
		log.Printf("✅ seeded %s fee for %s", data.FeeType, data.RegistrationNumber)
	}
}
