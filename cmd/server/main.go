package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/Youseb010/mada-server/internal/config"
	"github.com/Youseb010/mada-server/internal/handler"
	"github.com/Youseb010/mada-server/internal/middleware"
	"github.com/Youseb010/mada-server/internal/router"
	"github.com/Youseb010/mada-server/internal/service"
	"github.com/Youseb010/mada-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "mada-server")
	log := middleware.Logger

	st, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DataFile).Msg("failed to open catalog store")
	}
	if err := st.SeedIfEmpty(); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default channel")
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(st)
	st.OnFlush = func(d time.Duration) {
		handler.Metrics.FlushDuration.Observe(d.Seconds())
	}
	cache.OnHit = handler.Metrics.CacheHits.Inc
	cache.OnMiss = handler.Metrics.CacheMisses.Inc

	catalogSvc := service.NewCatalogService(st, cache)
	statsSvc := service.NewStatsService(st)

	app := fiber.New(fiber.Config{
		AppName:      "Mada API",
		ServerHeader: "Mada",
		BodyLimit:    10 * 1024 * 1024,
	})

	h := &router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Channel: handler.NewChannelHandler(catalogSvc),
		Video:   handler.NewVideoHandler(catalogSvc),
		Stats:   handler.NewStatsHandler(statsSvc),
		Health:  handler.NewHealthHandler(st, cache.Client()),
		Export:  handler.NewExportHandler(st.Path()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("mada backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
