package handler

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	"github.com/Youseb010/mada-server/internal/middleware"
)

type ExportHandler struct {
	catalogPath string
}

func NewExportHandler(catalogPath string) *ExportHandler {
	return &ExportHandler{catalogPath: catalogPath}
}

// Export handles GET /api/export — downloads the raw durable catalog file.
// The file is only ever replaced atomically, so a concurrent flush cannot
// serve a half-written document.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	if _, err := os.Stat(h.catalogPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No catalog has been persisted yet")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to read catalog file")
	}

	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", "attachment; filename="+filepath.Base(h.catalogPath))
	return c.SendFile(h.catalogPath)
}
