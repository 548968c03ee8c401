package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/logger"
)

// Migration represents a database migration
type Migration struct {
	ID   string
	Name string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// GetMigrations returns all available migrations in order
func GetMigrations() []Migration {
	return []Migration{
		{
			ID:   "001",
			Name: "create_core_tables",
			Up:   migration001Up,
			Down: migration001Down,
		},
		{
			ID:   "002",
			Name: "create_indexes_and_constraints",
			Up:   migration002Up,
			Down: migration002Down,
		},
	}
}

// RunMigrations executes all pending migrations
func RunMigrations(db *gorm.DB) error {
	log := logger.Migration()

	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range GetMigrations() {
		if hasBeenRun(db, migration.ID) {
			log.Debug("Migration already applied, skipping", "id", migration.ID, "name", migration.Name)
			continue
		}

		log.Info("Running migration", "id", migration.ID, "name", migration.Name)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("failed to run migration %s: %w", migration.ID, err)
			}

			return recordMigration(tx, migration.ID, migration.Name)
		})
		if err != nil {
			return err
		}

		log.Info("Successfully applied migration", "id", migration.ID)
	}

	log.Info("All migrations completed successfully")
	return nil
}

// RollbackLast rolls back the most recently applied migration
func RollbackLast(db *gorm.DB) error {
	log := logger.Migration()

	var lastID string
	err := db.Raw("SELECT id FROM schema_migrations ORDER BY id DESC LIMIT 1").Scan(&lastID).Error
	if err != nil {
		return fmt.Errorf("failed to find last migration: %w", err)
	}
	if lastID == "" {
		log.Info("No migrations to roll back")
		return nil
	}

	for _, migration := range GetMigrations() {
		if migration.ID != lastID {
			continue
		}

		log.Info("Rolling back migration", "id", migration.ID, "name", migration.Name)

		return db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(tx); err != nil {
				return fmt.Errorf("failed to roll back migration %s: %w", migration.ID, err)
			}
			return tx.Exec("DELETE FROM schema_migrations WHERE id = ?", migration.ID).Error
		})
	}

	return fmt.Errorf("migration %s not found in registry", lastID)
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(db *gorm.DB) error {
	return db.Exec(`
        CREATE TABLE IF NOT EXISTS schema_migrations (
            id VARCHAR(10) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )
    `).Error
}

// hasBeenRun checks whether a migration has already been applied
func hasBeenRun(db *gorm.DB, id string) bool {
	var count int64
	db.Raw("SELECT COUNT(*) FROM schema_migrations WHERE id = ?", id).Scan(&count)
	return count > 0
}

// recordMigration records a migration as applied
func recordMigration(db *gorm.DB, id, name string) error {
	return db.Exec("INSERT INTO schema_migrations (id, name) VALUES (?, ?)", id, name).Error
}
