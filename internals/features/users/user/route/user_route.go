package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "campusfee_backend/internals/features/users/user/controller"
)

// UserProfileRoutes mounts the self-serve profile endpoints on the
// student group.
func UserProfileRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserProfileController(db)

	r.Get("/profile", ctrl.GetProfile)
	r.Put("/profile", ctrl.UpdateProfile)
}
