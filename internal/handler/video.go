package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Youseb010/mada-server/internal/middleware"
	"github.com/Youseb010/mada-server/internal/model"
	"github.com/Youseb010/mada-server/internal/service"
)

type VideoHandler struct {
	svc *service.CatalogService
}

func NewVideoHandler(svc *service.CatalogService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Create handles POST /api/videos — registers metadata for an asset the
// client already uploaded to the external media host.
func (h *VideoHandler) Create(c fiber.Ctx) error {
	var req model.CreateVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	video, err := h.svc.CreateVideo(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to persist video")
	}

	return c.JSON(fiber.Map{"video": video})
}

// GetByID handles GET /api/videos/:id
func (h *VideoHandler) GetByID(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.svc.GetVideo(c.Context(), id)
	if err != nil {
		return videoError(c, err, "Failed to lookup video")
	}

	return c.JSON(fiber.Map{"video": video})
}

// RecordView handles POST /api/videos/:id/view
func (h *VideoHandler) RecordView(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	views, err := h.svc.RecordView(c.Context(), id)
	if err != nil {
		return videoError(c, err, "Failed to record view")
	}

	return c.JSON(fiber.Map{"ok": true, "views": views})
}

// RecordLike handles POST /api/videos/:id/like
func (h *VideoHandler) RecordLike(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	likes, err := h.svc.RecordLike(c.Context(), id)
	if err != nil {
		return videoError(c, err, "Failed to record like")
	}

	return c.JSON(fiber.Map{"ok": true, "likes": likes})
}

// RecordDislike handles POST /api/videos/:id/dislike
func (h *VideoHandler) RecordDislike(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	dislikes, err := h.svc.RecordDislike(c.Context(), id)
	if err != nil {
		return videoError(c, err, "Failed to record dislike")
	}

	return c.JSON(fiber.Map{"ok": true, "dislikes": dislikes})
}

// AddComment handles POST /api/videos/:id/comment
func (h *VideoHandler) AddComment(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	author, errMsg := middleware.ValidateAuthor(req.Author)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", errMsg)
	}
	req.Author = author

	text, errMsg := middleware.ValidateCommentText(req.Text)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", errMsg)
	}
	req.Text = text

	comment, err := h.svc.AddComment(c.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyField) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "author and text are required")
		}
		return videoError(c, err, "Failed to add comment")
	}

	return c.JSON(fiber.Map{"ok": true, "comment": comment})
}

// Search handles GET /api/search?q=
func (h *VideoHandler) Search(c fiber.Ctx) error {
	q := fiber.Query[string](c, "q")

	videos, err := h.svc.Search(c.Context(), q)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to search videos")
	}

	return c.JSON(fiber.Map{"videos": videos})
}

// Delete handles DELETE /api/videos/:id — deleting an unknown id still
// succeeds.
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.DeleteVideo(c.Context(), id); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to delete video")
	}

	return c.JSON(fiber.Map{"ok": true})
}

// videoError maps service errors to the API error taxonomy.
func videoError(c fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, service.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "not found")
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", fallback)
}
