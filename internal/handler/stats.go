package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Youseb010/mada-server/internal/middleware"
	"github.com/Youseb010/mada-server/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to compute statistics")
	}

	return c.JSON(stats)
}
