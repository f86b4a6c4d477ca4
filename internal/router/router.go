package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Youseb010/mada-server/internal/handler"
	"github.com/Youseb010/mada-server/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Channel *handler.ChannelHandler
	Video   *handler.VideoHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
	Export  *handler.ExportHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	writeLimit := middleware.NewWriteRateLimiter().Handler()
	commentLimit := middleware.NewCommentRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	api.Get("/init", h.Catalog.Init)

	api.Post("/channels", h.Channel.Create, writeLimit)

	api.Post("/videos", h.Video.Create, writeLimit)
	api.Get("/videos/:id", h.Video.GetByID)
	api.Post("/videos/:id/view", h.Video.RecordView, writeLimit)
	api.Post("/videos/:id/like", h.Video.RecordLike, writeLimit)
	api.Post("/videos/:id/dislike", h.Video.RecordDislike, writeLimit)
	api.Post("/videos/:id/comment", h.Video.AddComment, commentLimit)
	api.Delete("/videos/:id", h.Video.Delete, writeLimit)

	api.Get("/search", h.Video.Search)

	api.Get("/stats", h.Stats.GetStats)
	api.Get("/export", h.Export.Export, exportLimit)
}
