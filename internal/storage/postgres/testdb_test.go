package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/domain/user"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey, same as the PostgreSQL path. The pool is limited to
// one connection so every session sees the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// seedUser inserts a user and returns it
func seedUser(t *testing.T, db *gorm.DB, email string) *user.User {
	t.Helper()

	u := user.NewUser("Test User", email, "hashed-password")
	require.NoError(t, db.Create(u).Error)
	return u
}

// testEvent builds a valid event payload with the given candidates
func testEvent(title string, isActive bool, candidates ...event.Candidate) *event.Event {
	if len(candidates) == 0 {
		candidates = []event.Candidate{testCandidate("Candidate One", 1)}
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return event.NewEvent(title, "A test voting event", isActive, start, end, candidates)
}

// testCandidate builds a valid candidate payload
func testCandidate(name string, sequence int) event.Candidate {
	return event.Candidate{
		Photo:    "https://photos.example.com/" + name + ".png",
		Name:     name,
		Position: "Chairperson",
		Sequence: sequence,
		Visi:     "A clear vision",
		Misi:     "A concrete mission",
		Comment:  "No comment",
	}
}
