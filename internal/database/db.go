package database

import (
	"context"
	"fmt"
	"time"

	"kit-allocator/internal/logging"
	"kit-allocator/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open подключается к postgres, повторяя попытки пока БД поднимается
// (docker-compose стартует сервис раньше базы).
func Open(ctx context.Context, dsn string, logger logging.Logger) (*gorm.DB, error) {
	logger = logging.OrNop(logger)

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		logger.Info("connecting to DB", "attempt", i, "max_attempts", maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
			TranslateError: true,
		})
		if err == nil {
			logger.Info("connected to DB")
			break
		}

		logger.Warn("failed to connect to DB", "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables used by the allocator.
func Migrate(db *gorm.DB) error {
	// миграции
	err := db.AutoMigrate(
		&models.Asset{},
		&models.StarterKit{},
		&models.StarterKitAsset{},
		&models.AuditLog{},
		&models.AllocationClaim{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
