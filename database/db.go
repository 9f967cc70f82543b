package database

import (
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/config"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	// The pool is owned here; every repository operation acquires and
	// releases a connection from it.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create-if-absent table setup, safe to run on every start. The rating
	// CHECK constraint from the model tags lands here.
	if err := db.AutoMigrate(&models.Review{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate reviews table: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}
