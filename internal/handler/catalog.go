package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Youseb010/mada-server/internal/middleware"
	"github.com/Youseb010/mada-server/internal/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Init handles GET /api/init — the full catalog snapshot clients load on
// startup.
func (h *CatalogHandler) Init(c fiber.Ctx) error {
	snap, err := h.svc.Snapshot(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to load catalog")
	}
	return c.JSON(snap)
}
