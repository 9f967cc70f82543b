package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ilhamtrinanda/beauty-salon-microservice/database"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/config"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/handler"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/middleware"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/repository"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	reviewRepo, cleanup, err := newReviewRepository(cfg, logger)
	if err != nil {
		log.Fatalf("could not set up %s backend: %v", cfg.StorageBackend, err)
	}
	defer cleanup()

	reviewService := service.NewReviewService(reviewRepo)
	reviewHandler := handler.NewReviewHandler(reviewService, cfg.StorageBackend)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	reviewHandler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("review service listening", "addr", addr, "backend", cfg.StorageBackend)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newReviewRepository connects the backend selected by STORAGE_BACKEND and
// returns it together with a connection cleanup func.
func newReviewRepository(cfg *config.Config, logger *slog.Logger) (repository.ReviewRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := database.ConnectRedis(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewReviewRedisRepository(client), func() { client.Close() }, nil
	default:
		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewReviewPostgresRepository(db), cleanup, nil
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	return corsCfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
