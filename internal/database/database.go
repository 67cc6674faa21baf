package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gamevault/backend/internal/models"
)

// Options configures the connection.
type Options struct {
	Driver        string
	DSN           string
	SlowThreshold time.Duration
	LogLevel      logger.LogLevel
}

// Open connects to the configured database. SQLite connections are limited to
// a single open connection so in-memory databases stay shared.
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}
	if isSQLite(opts.Driver) {
		if err := registerSQLiteFunctions(); err != nil {
			return nil, fmt.Errorf("register sqlite functions: %w", err)
		}
	}

	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}

	// Configure GORM logger
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if isSQLite(opts.Driver) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	slog.Info("database_connected", "driver", opts.Driver)
	return db, nil
}

func isSQLite(driver string) bool {
	return strings.EqualFold(driver, "sqlite")
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates or updates the schema for every library model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("database_migrated")
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	return sqlDB.Close()
}
