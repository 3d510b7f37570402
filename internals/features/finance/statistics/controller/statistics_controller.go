package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusfee_backend/internals/features/finance/statistics/service"
	helper "campusfee_backend/internals/helpers"
)

type StatisticsController struct {
	DB *gorm.DB
}

func NewStatisticsController(db *gorm.DB) *StatisticsController {
	return &StatisticsController{DB: db}
}

// Dashboard (GET /api/admin/statistics)
func (h *StatisticsController) Dashboard(c *fiber.Ctx) error {
	stats, err := service.Compute(h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", stats)
}
