package services

import (
	"github.com/charmbracelet/log"

	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/domain/vote"
	"github.com/votelab/evote-api/internal/logger"
	"github.com/votelab/evote-api/internal/storage/postgres"
	"github.com/votelab/evote-api/internal/validation"
)

// EventService handles event lifecycle business logic
type EventService struct {
	eventRepo postgres.EventRepository
	voteRepo  postgres.VoteRepository
	validator validation.EventValidation
	log       *log.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo postgres.EventRepository, voteRepo postgres.VoteRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		voteRepo:  voteRepo,
		validator: validation.EventValidation{},
		log:       logger.Service("event"),
	}
}

// EventDetail is an event together with its per-candidate vote tallies
type EventDetail struct {
	Event   *event.Event `json:"event"`
	Tallies []vote.Tally `json:"tallies"`
}

// ActiveEventDetail is the active event with its paginated votes and tallies
type ActiveEventDetail struct {
	Event   *event.Event       `json:"event"`
	Votes   *postgres.VoteList `json:"votes"`
	Tallies []vote.Tally       `json:"tallies"`
}

// Create validates the payload and persists the event with its candidates
func (s *EventService) Create(payload *event.Event) (*event.Event, error) {
	if err := s.validator.ValidateTitle(payload.Title); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDescription(payload.Description); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Update applies the payload to an existing event, reconciling candidates
func (s *EventService) Update(id string, payload *event.Event) (*event.Event, error) {
	if err := s.validator.ValidateTitle(payload.Title); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDescription(payload.Description); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(id, payload)
}

// Delete removes an event with its candidates and votes
func (s *EventService) Delete(id string) error {
	return s.eventRepo.Delete(id)
}

// GetByID returns the event with candidates and per-candidate vote tallies
func (s *EventService) GetByID(id string) (*EventDetail, error) {
	ev, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tallies, err := s.voteRepo.TallyByCandidate(id)
	if err != nil {
		return nil, err
	}

	return &EventDetail{Event: ev, Tallies: tallies}, nil
}

// List returns a page of events scoped by the caller's role: admins see all
// events, default users only the active ones.
func (s *EventService) List(role user.Role, keyword string, pagination postgres.PaginationParams) (*postgres.EventList, error) {
	filter := postgres.EventListFilter{
		Keyword:    keyword,
		ActiveOnly: role != user.RoleSuperAdmin,
		Pagination: pagination,
	}
	return s.eventRepo.List(filter)
}

// GetActive returns the single active event with its votes and tallies
func (s *EventService) GetActive(pagination postgres.PaginationParams) (*ActiveEventDetail, error) {
	ev, err := s.eventRepo.GetActive()
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.GetByEventPaginated(ev.ID.String(), pagination)
	if err != nil {
		return nil, err
	}

	tallies, err := s.voteRepo.TallyByCandidate(ev.ID.String())
	if err != nil {
		return nil, err
	}

	return &ActiveEventDetail{Event: ev, Votes: votes, Tallies: tallies}, nil
}
