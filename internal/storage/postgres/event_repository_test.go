package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/domain/vote"
)

func TestEventRepositoryCreateRequiresCandidates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	e := testEvent("Empty Event", false)
	e.Candidates = nil

	err := repo.Create(e)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestEventRepositoryCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	e := testEvent("Board Election", false,
		testCandidate("Second", 2),
		testCandidate("First", 1),
	)
	require.NoError(t, repo.Create(e))

	got, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Board Election", got.Title)
	require.Len(t, got.Candidates, 2)
	// Candidates come back ordered by sequence
	assert.Equal(t, "First", got.Candidates[0].Name)
	assert.Equal(t, "Second", got.Candidates[1].Name)
}

func TestEventRepositoryGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	_, err := repo.GetByID(uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestEventRepositoryActiveExclusivityOnCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	a := testEvent("Event A", true, testCandidate("A1", 1), testCandidate("A2", 2))
	require.NoError(t, repo.Create(a))

	b := testEvent("Event B", true)
	require.NoError(t, repo.Create(b))

	gotA, err := repo.GetByID(a.ID.String())
	require.NoError(t, err)
	gotB, err := repo.GetByID(b.ID.String())
	require.NoError(t, err)

	assert.False(t, gotA.IsActive, "creating B active must deactivate A")
	assert.True(t, gotB.IsActive)

	var activeCount int64
	require.NoError(t, db.Model(&event.Event{}).Where("is_active = ?", true).Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)
}

func TestEventRepositoryActiveExclusivityOnUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	a := testEvent("Event A", true)
	require.NoError(t, repo.Create(a))
	b := testEvent("Event B", false)
	require.NoError(t, repo.Create(b))

	payload := testEvent("Event B", true)
	payload.Candidates = nil
	for _, c := range b.Candidates {
		payload.Candidates = append(payload.Candidates, c)
	}

	_, err := repo.Update(b.ID.String(), payload)
	require.NoError(t, err)

	gotA, err := repo.GetByID(a.ID.String())
	require.NoError(t, err)
	assert.False(t, gotA.IsActive)

	var activeCount int64
	require.NoError(t, db.Model(&event.Event{}).Where("is_active = ?", true).Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)
}

func TestEventRepositoryUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	_, err := repo.Update(uuid.NewString(), testEvent("Ghost", false))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestEventRepositoryUpdateBlankedFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	e := testEvent("Original", false)
	require.NoError(t, repo.Create(e))

	payload := testEvent("", false)
	_, err := repo.Update(e.ID.String(), payload)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestEventRepositoryUpdateReconcilesCandidates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)
	voteRepo := NewPostgresVoteRepository(db)

	e := testEvent("Election", false,
		testCandidate("Keep", 1),
		testCandidate("Drop", 2),
	)
	require.NoError(t, repo.Create(e))

	created, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)
	require.Len(t, created.Candidates, 2)

	keep := created.Candidates[0]
	drop := created.Candidates[1]

	// A vote referencing the soon-to-be-dropped candidate
	voter := seedUser(t, db, "voter@example.com")
	require.NoError(t, voteRepo.Create(vote.NewVote(voter.ID, created.ID, drop.ID)))

	// Payload keeps one candidate (renamed), omits the other, adds a new one
	payload := testEvent("Election", false)
	payload.Candidates = []event.Candidate{
		{ID: keep.ID, Photo: keep.Photo, Name: "Keep Renamed", Position: keep.Position, Sequence: 1, Visi: keep.Visi, Misi: keep.Misi, Comment: keep.Comment},
		testCandidate("Fresh", 2),
	}

	updated, err := repo.Update(e.ID.String(), payload)
	require.NoError(t, err)
	require.Len(t, updated.Candidates, 2)
	assert.Equal(t, "Keep Renamed", updated.Candidates[0].Name)
	assert.Equal(t, "Fresh", updated.Candidates[1].Name)

	// The omitted candidate and its votes are gone
	var candidateCount int64
	require.NoError(t, db.Model(&event.Candidate{}).Where("id = ?", drop.ID).Count(&candidateCount).Error)
	assert.Zero(t, candidateCount)

	var voteCount int64
	require.NoError(t, db.Model(&vote.Vote{}).Where("candidate_id = ?", drop.ID).Count(&voteCount).Error)
	assert.Zero(t, voteCount)
}

func TestEventRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)
	voteRepo := NewPostgresVoteRepository(db)

	e := testEvent("Doomed", false, testCandidate("C1", 1), testCandidate("C2", 2))
	require.NoError(t, repo.Create(e))

	created, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)

	voter := seedUser(t, db, "voter@example.com")
	require.NoError(t, voteRepo.Create(vote.NewVote(voter.ID, created.ID, created.Candidates[0].ID)))

	require.NoError(t, repo.Delete(e.ID.String()))

	_, err = repo.GetByID(e.ID.String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var candidateCount, voteCount int64
	require.NoError(t, db.Model(&event.Candidate{}).Where("event_id = ?", e.ID).Count(&candidateCount).Error)
	require.NoError(t, db.Model(&vote.Vote{}).Where("event_id = ?", e.ID).Count(&voteCount).Error)
	assert.Zero(t, candidateCount, "delete must leave no candidate rows")
	assert.Zero(t, voteCount, "delete must leave no vote rows")
}

func TestEventRepositoryDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	err := repo.Delete(uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestEventRepositoryListKeywordAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	require.NoError(t, repo.Create(testEvent("Student Council 2025", false)))
	require.NoError(t, repo.Create(testEvent("Board Election", false)))
	require.NoError(t, repo.Create(testEvent("Student Council 2026", true)))

	list, err := repo.List(EventListFilter{
		Keyword:    "student",
		Pagination: PaginationParams{Limit: 10, Page: 1},
	})
	require.NoError(t, err)

	require.Len(t, list.Results, 2)
	assert.Equal(t, int64(2), list.Paginator.TotalRecords)
	// Active first, then newest
	assert.True(t, list.Results[0].IsActive)
	assert.Equal(t, "Student Council 2026", list.Results[0].Title)
}

func TestEventRepositoryListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(testEvent("Event", false)))
	}

	list, err := repo.List(EventListFilter{Pagination: PaginationParams{Limit: 2, Page: 2}})
	require.NoError(t, err)

	assert.Len(t, list.Results, 2)
	assert.Equal(t, int64(5), list.Paginator.TotalRecords)
	assert.Equal(t, 3, list.Paginator.TotalPages)
	assert.Equal(t, 2, list.Paginator.CurrentPage)
	assert.True(t, list.Paginator.HasNextPage)
}

func TestEventRepositoryGetActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresEventRepository(db)

	_, err := repo.GetActive()
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	e := testEvent("Live Event", true)
	require.NoError(t, repo.Create(e))

	got, err := repo.GetActive()
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.NotEmpty(t, got.Candidates)
}
