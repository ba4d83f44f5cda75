package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoa-service/internal/model"
)

// DBConfig holds the database configuration
type DBConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// Connect opens the database connection, tunes the pool and migrates the
// schema. The returned handle is passed explicitly to the repositories; there
// is no package-level instance.
func Connect(config DBConfig) (*gorm.DB, error) {
	logLevel := config.LogLevel
	if logLevel == 0 {
		logLevel = logger.Info
	}

	// PreferSimpleProtocol avoids "prepared statement already exists" errors
	// behind connection poolers.
	pgConfig := postgres.Config{
		DSN:                  config.DSN,
		PreferSimpleProtocol: true,
	}

	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey, which the repositories map to Conflict.
	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	if config.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Association{}, &model.Membership{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
