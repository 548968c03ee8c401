package vote

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/common"
)

// Vote links one user to one candidate within one event. The composite
// unique index on (user_id, event_id) is the source of truth for the
// one-vote-per-user-per-event rule; application-level existence checks are
// advisory only.
type Vote struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_event"`
	EventID         uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_event"`
	CandidateID     uuid.UUID `json:"candidate_id" gorm:"type:uuid;not null;index"`
	TransactionHash string    `json:"transaction_hash,omitempty"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations - using shared types to avoid circular imports
	User      common.SharedUser      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event     common.SharedEvent     `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Candidate common.SharedCandidate `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
}

// TableName overrides the table name used by GORM
func (Vote) TableName() string {
	return "votes"
}

// BeforeCreate sets a UUID before creating the record
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// NewVote creates a new vote record
func NewVote(userID, eventID, candidateID uuid.UUID) *Vote {
	return &Vote{
		ID:          uuid.New(),
		UserID:      userID,
		EventID:     eventID,
		CandidateID: candidateID,
	}
}

// Validate checks if the vote data is valid
func (v *Vote) Validate() error {
	if v.UserID == uuid.Nil {
		return apperror.Validation("userId is required")
	}
	if v.EventID == uuid.Nil {
		return apperror.Validation("eventId is required")
	}
	if v.CandidateID == uuid.Nil {
		return apperror.Validation("candidateId is required")
	}
	return nil
}

// Tally is the vote count for a single candidate within an event
type Tally struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	VoteCount   int64     `json:"vote_count"`
}
