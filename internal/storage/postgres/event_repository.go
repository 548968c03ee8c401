package postgres

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/domain/vote"
	"github.com/votelab/evote-api/internal/logger"
)

// PostgresEventRepository implements EventRepository using GORM
type PostgresEventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresEventRepository creates a new event repository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{
		db:  db,
		log: logger.Repository("event"),
	}
}

// Create inserts the event and its candidates as one unit. When the payload
// is active, every other event is deactivated in the same transaction so the
// exclusivity invariant holds against concurrent creates.
func (r *PostgresEventRepository) Create(e *event.Event) error {
	r.log.Debug("creating event", "title", e.Title, "candidates", len(e.Candidates), "is_active", e.IsActive)

	if err := e.Validate(); err != nil {
		r.log.Error("event validation failed", "error", err)
		return err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if e.IsActive {
			if err := deactivateOtherEvents(tx, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(e).Error
	})
	if err != nil {
		r.log.Error("failed to create event", "error", err, "title", e.Title)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info("event created", "event_id", e.ID, "title", e.Title)
	return nil
}

// Update applies the payload and reconciles the candidate set: candidates
// with a matching existing id are updated, candidates without one are
// inserted, and existing candidates absent from the payload are deleted
// together with any votes referencing them.
func (r *PostgresEventRepository) Update(id string, payload *event.Event) (*event.Event, error) {
	r.log.Debug("updating event", "event_id", id)

	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("event id must be a valid UUID")
	}

	if err := payload.Validate(); err != nil {
		r.log.Error("event validation failed", "event_id", id, "error", err)
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing event.Event
		if err := tx.Preload("Candidates").First(&existing, "id = ?", eventID).Error; err != nil {
			if isNotFound(err) {
				return apperror.NotFound("Event not found")
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		if payload.IsActive {
			if err := deactivateOtherEvents(tx, eventID); err != nil {
				return err
			}
		}

		updates := map[string]any{
			"title":       payload.Title,
			"description": payload.Description,
			"is_active":   payload.IsActive,
			"start_date":  payload.StartDate,
			"end_date":    payload.EndDate,
		}
		if err := tx.Model(&event.Event{}).Where("id = ?", eventID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		return reconcileCandidates(tx, eventID, existing.Candidates, payload.Candidates)
	})
	if err != nil {
		if _, tagged := apperror.KindOf(err); !tagged {
			r.log.Error("failed to update event", "event_id", id, "error", err)
		}
		return nil, err
	}

	updated, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	r.log.Info("event updated", "event_id", id, "candidates", len(updated.Candidates))
	return updated, nil
}

// reconcileCandidates diffs the stored candidate set against the payload.
// Deleting a candidate also deletes its votes, so no vote ever references a
// missing candidate.
func reconcileCandidates(tx *gorm.DB, eventID uuid.UUID, existing, payload []event.Candidate) error {
	keep := make(map[uuid.UUID]bool, len(payload))

	for i := range payload {
		c := &payload[i]
		c.EventID = eventID

		if c.ID != uuid.Nil && containsCandidate(existing, c.ID) {
			keep[c.ID] = true
			updates := map[string]any{
				"photo":    c.Photo,
				"name":     c.Name,
				"position": c.Position,
				"sequence": c.Sequence,
				"visi":     c.Visi,
				"misi":     c.Misi,
				"comment":  c.Comment,
			}
			if err := tx.Model(&event.Candidate{}).Where("id = ?", c.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update candidate: %w", err)
			}
			continue
		}

		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("failed to create candidate: %w", err)
		}
		keep[c.ID] = true
	}

	for i := range existing {
		if keep[existing[i].ID] {
			continue
		}
		if err := tx.Where("candidate_id = ?", existing[i].ID).Delete(&vote.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete candidate votes: %w", err)
		}
		if err := tx.Delete(&event.Candidate{}, "id = ?", existing[i].ID).Error; err != nil {
			return fmt.Errorf("failed to delete candidate: %w", err)
		}
	}

	return nil
}

func containsCandidate(candidates []event.Candidate, id uuid.UUID) bool {
	for i := range candidates {
		if candidates[i].ID == id {
			return true
		}
	}
	return false
}

// Delete removes the event after cascading its votes and candidates inside
// one transaction, so concurrent readers never see orphaned rows.
func (r *PostgresEventRepository) Delete(id string) error {
	r.log.Debug("deleting event", "event_id", id)

	eventID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("event id must be a valid UUID")
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing event.Event
		if err := tx.First(&existing, "id = ?", eventID).Error; err != nil {
			if isNotFound(err) {
				return apperror.NotFound("Event not found")
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&vote.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete event votes: %w", err)
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&event.Candidate{}).Error; err != nil {
			return fmt.Errorf("failed to delete event candidates: %w", err)
		}
		if err := tx.Delete(&event.Event{}, "id = ?", eventID).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
	if err != nil {
		if _, tagged := apperror.KindOf(err); !tagged {
			r.log.Error("failed to delete event", "event_id", id, "error", err)
		}
		return err
	}

	r.log.Info("event deleted", "event_id", id)
	return nil
}

// GetByID returns the event with its candidates ordered by sequence
func (r *PostgresEventRepository) GetByID(id string) (*event.Event, error) {
	r.log.Debug("retrieving event by ID", "event_id", id)

	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("event id must be a valid UUID")
	}

	var e event.Event
	if err := r.db.Preload("Candidates", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).First(&e, "id = ?", eventID).Error; err != nil {
		if isNotFound(err) {
			r.log.Debug("event not found", "event_id", id)
			return nil, apperror.NotFound("Event not found")
		}
		r.log.Error("failed to retrieve event", "event_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve event: %w", err)
	}

	return &e, nil
}

// List returns a page of events ordered by is_active DESC, created_at DESC,
// optionally narrowed by a case-insensitive title keyword.
func (r *PostgresEventRepository) List(filter EventListFilter) (*EventList, error) {
	params := filter.Pagination.Normalize()
	r.log.Debug("listing events", "keyword", filter.Keyword, "active_only", filter.ActiveOnly, "page", params.Page, "limit", params.Limit)

	query := r.db.Model(&event.Event{})
	if filter.Keyword != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Error("failed to count events", "error", err)
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	var events []*event.Event
	if err := query.
		Preload("Candidates", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Order("is_active DESC, created_at DESC").
		Offset(params.Skip()).Limit(params.Limit).
		Find(&events).Error; err != nil {
		r.log.Error("failed to list events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return &EventList{
		Results:   events,
		Paginator: NewPaginator(params, total),
	}, nil
}

// GetActive returns the single currently active event with its candidates
func (r *PostgresEventRepository) GetActive() (*event.Event, error) {
	r.log.Debug("retrieving active event")

	var e event.Event
	if err := r.db.Preload("Candidates", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).First(&e, "is_active = ?", true).Error; err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("No active event found")
		}
		r.log.Error("failed to retrieve active event", "error", err)
		return nil, fmt.Errorf("failed to retrieve active event: %w", err)
	}

	return &e, nil
}

// deactivateOtherEvents clears is_active on every event except the given id.
// Runs inside the caller's transaction so clear-others plus set-this is one
// atomic step.
func deactivateOtherEvents(tx *gorm.DB, except uuid.UUID) error {
	query := tx.Model(&event.Event{}).Where("is_active = ?", true)
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	if err := query.Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate other events: %w", err)
	}
	return nil
}
