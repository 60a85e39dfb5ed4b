package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the primary store (pilot platform data). AuthDB is the legacy auth
// store that owns credentials and refresh tokens.
var (
	DB     *gorm.DB
	AuthDB *gorm.DB
)

func Connect(cfg *config.Config) error {
	var err error
	DB, err = open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to primary database: %w", err)
	}
	slog.Info("primary database connected")

	AuthDB, err = open(cfg.AuthDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to auth database: %w", err)
	}
	slog.Info("auth database connected")
	return nil
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate runs AutoMigrate on both stores.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.PilotProfile{},
		&models.InspectionJob{},
		&models.ProcessingJob{},
		&models.ProcessingResult{},
		&models.FlightPath{},
		&models.SystemLog{},
	); err != nil {
		return fmt.Errorf("primary migration failed: %w", err)
	}

	if err := AuthDB.AutoMigrate(
		&models.AuthUser{},
		&models.RefreshToken{},
	); err != nil {
		return fmt.Errorf("auth migration failed: %w", err)
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func PingAuth() error {
	sqlDB, err := AuthDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes both underlying connection pools.
func Close() {
	for _, db := range []*gorm.DB{DB, AuthDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}
}
