package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/vote"
	"github.com/votelab/evote-api/internal/logger"
)

// PostgresVoteRepository implements VoteRepository using GORM
type PostgresVoteRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresVoteRepository creates a new vote repository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{
		db:  db,
		log: logger.Repository("vote"),
	}
}

// Create inserts the vote. A violation of the (user_id, event_id) unique
// constraint is translated to a ConflictError here, which makes the insert
// safe under concurrent duplicate requests: the constraint, not the
// service-level pre-check, decides the loser.
func (r *PostgresVoteRepository) Create(v *vote.Vote) error {
	r.log.Debug("creating vote", "vote_id", v.ID, "event_id", v.EventID, "user_id", v.UserID)

	if err := v.Validate(); err != nil {
		r.log.Error("vote validation failed", "error", err, "vote_id", v.ID)
		return err
	}

	if err := r.db.Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Debug("duplicate vote rejected by constraint", "event_id", v.EventID, "user_id", v.UserID)
			return apperror.ConflictWrap("You have already voted in this event", err)
		}
		r.log.Error("failed to create vote", "error", err, "vote_id", v.ID)
		return fmt.Errorf("failed to create vote: %w", err)
	}

	r.log.Info("vote created", "vote_id", v.ID, "event_id", v.EventID, "user_id", v.UserID)
	return nil
}

// GetByUserAndEvent returns the vote the user cast in the event, if any
func (r *PostgresVoteRepository) GetByUserAndEvent(userID, eventID string) (*vote.Vote, error) {
	r.log.Debug("retrieving vote", "user_id", userID, "event_id", eventID)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.Validation("user id must be a valid UUID")
	}
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperror.Validation("event id must be a valid UUID")
	}

	var v vote.Vote
	if err := r.db.First(&v, "user_id = ? AND event_id = ?", userUUID, eventUUID).Error; err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("Vote not found")
		}
		r.log.Error("failed to retrieve vote", "user_id", userID, "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve vote: %w", err)
	}

	return &v, nil
}

// GetByEventPaginated returns a page of the event's votes, newest first
func (r *PostgresVoteRepository) GetByEventPaginated(eventID string, params PaginationParams) (*VoteList, error) {
	params = params.Normalize()
	r.log.Debug("retrieving votes by event", "event_id", eventID, "page", params.Page, "limit", params.Limit)

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperror.Validation("event id must be a valid UUID")
	}

	var total int64
	if err := r.db.Model(&vote.Vote{}).Where("event_id = ?", eventUUID).Count(&total).Error; err != nil {
		r.log.Error("failed to count votes", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	var votes []*vote.Vote
	if err := r.db.
		Preload("User").Preload("Candidate").
		Where("event_id = ?", eventUUID).
		Order("created_at DESC").
		Offset(params.Skip()).Limit(params.Limit).
		Find(&votes).Error; err != nil {
		r.log.Error("failed to retrieve votes", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve votes: %w", err)
	}

	return &VoteList{
		Results:   votes,
		Paginator: NewPaginator(params, total),
	}, nil
}

// TallyByCandidate returns the vote count per candidate for the event
func (r *PostgresVoteRepository) TallyByCandidate(eventID string) ([]vote.Tally, error) {
	r.log.Debug("tallying votes", "event_id", eventID)

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperror.Validation("event id must be a valid UUID")
	}

	var tallies []vote.Tally
	if err := r.db.Model(&vote.Vote{}).
		Select("candidate_id, COUNT(*) AS vote_count").
		Where("event_id = ?", eventUUID).
		Group("candidate_id").
		Scan(&tallies).Error; err != nil {
		r.log.Error("failed to tally votes", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}

	return tallies, nil
}
