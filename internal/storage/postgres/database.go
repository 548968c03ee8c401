package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/votelab/evote-api/internal/config"
	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/domain/vote"
	"github.com/votelab/evote-api/internal/logger"
)

// ConnectionConfig holds database connection pool configuration
type ConnectionConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns default connection configuration
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute * 30,
	}
}

// Connect establishes the PostgreSQL connection. TranslateError is enabled so
// constraint violations surface as gorm.ErrDuplicatedKey regardless of driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return ConnectWithConfig(cfg, DefaultConnectionConfig())
}

// ConnectWithConfig establishes the connection with explicit pool settings
func ConnectWithConfig(cfg *config.Config, connCfg *ConnectionConfig) (*gorm.DB, error) {
	log := logger.Database()
	log.Info("Connecting to PostgreSQL database", "host", cfg.DB.Host, "database", cfg.DB.Name)

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseURL()), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	sqlDB.SetMaxIdleConns(connCfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(connCfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		log.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")
	return db, nil
}

// AutoMigrate creates or updates the schema for all domain models, including
// the composite unique index on votes (user_id, event_id).
func AutoMigrate(db *gorm.DB) error {
	log := logger.Database()
	log.Info("Running schema migration")

	if err := db.AutoMigrate(
		&user.User{},
		&event.Event{},
		&event.Candidate{},
		&vote.Vote{},
	); err != nil {
		log.Error("Schema migration failed", "error", err)
		return fmt.Errorf("schema migration failed: %w", err)
	}

	log.Info("Schema migration completed")
	return nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// isUniqueViolation reports whether err is a unique constraint violation.
// gorm.ErrDuplicatedKey covers drivers with error translation enabled; the
// pgconn check covers raw PostgreSQL errors that bypass translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isNotFound reports whether err is the store's missing-record error
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
