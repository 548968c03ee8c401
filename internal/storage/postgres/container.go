package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/config"
	"github.com/votelab/evote-api/internal/logger"
)

// RepositoryContainer groups every repository behind one handle
type RepositoryContainer interface {
	Events() EventRepository
	Users() UserRepository
	Votes() VoteRepository
	DB() *gorm.DB
	Health() error
	Close() error
}

// Container implements RepositoryContainer
type Container struct {
	db        *gorm.DB
	log       *log.Logger
	eventRepo EventRepository
	userRepo  UserRepository
	voteRepo  VoteRepository
}

// NewContainer connects, migrates and initializes all repositories
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized")
	return container, nil
}

// NewContainerWithDB builds a container around an existing connection. Used
// by tests that bring their own database.
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:        db,
		log:       logger.Repository("postgres_container"),
		eventRepo: NewPostgresEventRepository(db),
		userRepo:  NewPostgresUserRepository(db),
		voteRepo:  NewPostgresVoteRepository(db),
	}
}

// Events returns the event repository
func (c *Container) Events() EventRepository {
	return c.eventRepo
}

// Users returns the user repository
func (c *Container) Users() UserRepository {
	return c.userRepo
}

// Votes returns the vote repository
func (c *Container) Votes() VoteRepository {
	return c.voteRepo
}

// DB exposes the underlying connection
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Health pings the database
func (c *Container) Health() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool
func (c *Container) Close() error {
	c.log.Info("Closing repository container")
	return Close(c.db)
}
