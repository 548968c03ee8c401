package migrations

import "gorm.io/gorm"

// migration002Up creates lookup indexes and the uniqueness constraints the
// application relies on. The unique index on votes(user_id, event_id) is the
// enforcement mechanism for one-vote-per-user-per-event; the service-level
// existence check is advisory only.
func migration002Up(db *gorm.DB) error {
	statements := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		"CREATE INDEX IF NOT EXISTS idx_events_is_active ON events(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_events_dates ON events(start_date, end_date)",

		"CREATE INDEX IF NOT EXISTS idx_candidates_event ON candidates(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_candidates_sequence ON candidates(event_id, sequence)",

		"CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_user_event ON votes(user_id, event_id)",
		"CREATE INDEX IF NOT EXISTS idx_votes_event ON votes(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_votes_candidate ON votes(candidate_id)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration002Down drops the indexes
func migration002Down(db *gorm.DB) error {
	statements := []string{
		"DROP INDEX IF EXISTS idx_votes_candidate",
		"DROP INDEX IF EXISTS idx_votes_event",
		"DROP INDEX IF EXISTS idx_votes_user_event",
		"DROP INDEX IF EXISTS idx_candidates_sequence",
		"DROP INDEX IF EXISTS idx_candidates_event",
		"DROP INDEX IF EXISTS idx_events_dates",
		"DROP INDEX IF EXISTS idx_events_created_at",
		"DROP INDEX IF EXISTS idx_events_is_active",
		"DROP INDEX IF EXISTS idx_users_role",
		"DROP INDEX IF EXISTS idx_users_email",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
