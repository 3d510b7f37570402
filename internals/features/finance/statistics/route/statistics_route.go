package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statisticsController "campusfee_backend/internals/features/finance/statistics/controller"
)

// StatisticsAdminRoutes mounts the dashboard summary on the admin group.
func StatisticsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := statisticsController.NewStatisticsController(db)

	r.Get("/statistics", ctrl.Dashboard)
}
