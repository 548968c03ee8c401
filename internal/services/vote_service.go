package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/vote"
	"github.com/votelab/evote-api/internal/ledger"
	"github.com/votelab/evote-api/internal/logger"
	"github.com/votelab/evote-api/internal/storage/postgres"
)

// VoteService orchestrates vote recording: referential checks across event,
// user and candidate, duplicate prevention, and reconciliation of the
// optional ledger write with the local record.
type VoteService struct {
	voteRepo  postgres.VoteRepository
	eventRepo postgres.EventRepository
	userRepo  postgres.UserRepository
	ledger    ledger.Client
	log       *log.Logger
}

// NewVoteService creates a new vote service
func NewVoteService(
	voteRepo postgres.VoteRepository,
	eventRepo postgres.EventRepository,
	userRepo postgres.UserRepository,
	ledgerClient ledger.Client,
) *VoteService {
	return &VoteService{
		voteRepo:  voteRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		ledger:    ledgerClient,
		log:       logger.Service("vote"),
	}
}

// RecordVote casts a vote for userID in eventID for candidateID.
//
// The steps run in order with none skipped: input validation, event, user
// and candidate resolution, duplicate check, optional ledger submission, and
// finally the local insert. The duplicate pre-check is advisory; the unique
// constraint on (user_id, event_id) decides concurrent duplicates, and its
// violation surfaces as the same ConflictError. When the ledger is enabled,
// a failed or timed-out submission aborts the operation before any local row
// is written, so a local vote never exists without a confirmed transaction.
func (s *VoteService) RecordVote(ctx context.Context, userID, eventID, candidateID string) (*vote.Vote, error) {
	if userID == "" {
		return nil, apperror.Validation("userId is required")
	}
	if eventID == "" {
		return nil, apperror.Validation("eventId is required")
	}
	if candidateID == "" {
		return nil, apperror.Validation("candidateId is required")
	}

	s.log.Debug("recording vote", "user_id", userID, "event_id", eventID, "candidate_id", candidateID)

	ev, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("Event not found")
		}
		return nil, err
	}

	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	candidateUUID, err := uuid.Parse(candidateID)
	if err != nil {
		return nil, apperror.Validation("candidateId must be a valid UUID")
	}
	if !ev.HasCandidate(candidateUUID) {
		return nil, apperror.NotFound("Candidate not found")
	}

	// Advisory duplicate check for the common case; the unique constraint
	// settles concurrent duplicates at insert time.
	if _, err := s.voteRepo.GetByUserAndEvent(userID, eventID); err == nil {
		s.log.Debug("duplicate vote rejected by pre-check", "user_id", userID, "event_id", eventID)
		return nil, apperror.Conflict("You have already voted in this event")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	v := vote.NewVote(u.ID, ev.ID, candidateUUID)

	if s.ledger.Enabled() {
		hash := ledger.VoteHash(u.ID, ev.ID, candidateUUID)
		txRef, err := s.ledger.Submit(ctx, hash)
		if err != nil {
			s.log.Error("ledger submission failed, vote not recorded", "user_id", userID, "event_id", eventID, "error", err)
			if _, tagged := apperror.KindOf(err); tagged {
				return nil, err
			}
			return nil, apperror.ExternalService("Failed to record vote on ledger", err)
		}
		v.TransactionHash = txRef
	}

	if err := s.voteRepo.Create(v); err != nil {
		return nil, err
	}

	s.log.Info("vote recorded", "vote_id", v.ID, "user_id", userID, "event_id", eventID, "tx", v.TransactionHash)
	return v, nil
}
