package migrations

import "gorm.io/gorm"

// migration001Up creates the core tables
func migration001Up(db *gorm.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name VARCHAR(100) NOT NULL,
            email VARCHAR(255) NOT NULL,
            password VARCHAR(255) NOT NULL,
            role VARCHAR(32) NOT NULL DEFAULT 'DEFAULT_USER',
            created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS events (
            id UUID PRIMARY KEY,
            title VARCHAR(200) NOT NULL,
            description TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT FALSE,
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS candidates (
            id UUID PRIMARY KEY,
            event_id UUID NOT NULL REFERENCES events(id),
            photo VARCHAR(1024) NOT NULL,
            name VARCHAR(100) NOT NULL,
            position VARCHAR(100) NOT NULL,
            sequence INTEGER NOT NULL,
            visi TEXT NOT NULL,
            misi TEXT NOT NULL,
            comment TEXT NOT NULL
        )`,

		`CREATE TABLE IF NOT EXISTS votes (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id),
            event_id UUID NOT NULL REFERENCES events(id),
            candidate_id UUID NOT NULL REFERENCES candidates(id),
            transaction_hash VARCHAR(255),
            created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration001Down drops the core tables
func migration001Down(db *gorm.DB) error {
	statements := []string{
		"DROP TABLE IF EXISTS votes",
		"DROP TABLE IF EXISTS candidates",
		"DROP TABLE IF EXISTS events",
		"DROP TABLE IF EXISTS users",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
