package seeds

import (
	"gorm.io/gorm"

	financeSeeds "campusfee_backend/internals/seeds/finance"
	userSeeds "campusfee_backend/internals/seeds/users"
)

// RunAllSeeds loads the bootstrap dataset: the default admin plus a few
// demo students and their fees. Every seeder skips rows that already
// exist, so running this on boot is safe.
func RunAllSeeds(db *gorm.DB) {
	userSeeds.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	financeSeeds.SeedFeesFromJSON(db, "internals/seeds/finance/data_fees.json")
}
