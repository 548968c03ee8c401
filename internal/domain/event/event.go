package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/apperror"
)

// Event represents a voting round with a title, time window and candidate list.
// At most one event holds IsActive=true at any time; the repository
// deactivates every other event in the same transaction that activates one.
type Event struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"not null"`
	IsActive    bool        `json:"isActive" gorm:"not null;default:false;index"`
	StartDate   time.Time   `json:"startDate" gorm:"not null"`
	EndDate     time.Time   `json:"endDate" gorm:"not null"`
	Candidates  []Candidate `json:"candidates,omitempty" gorm:"foreignKey:EventID"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// Candidate represents an option a user may vote for within an event.
// Candidates are owned exclusively by one event and are removed together
// with it, or when an update payload no longer carries them.
type Candidate struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EventID  uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	Photo    string    `json:"photo" gorm:"not null"`
	Name     string    `json:"name" gorm:"not null"`
	Position string    `json:"position" gorm:"not null"`
	Sequence int       `json:"sequence" gorm:"not null"`
	Visi     string    `json:"visi" gorm:"type:text;not null"`
	Misi     string    `json:"misi" gorm:"type:text;not null"`
	Comment  string    `json:"comment" gorm:"type:text;not null"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// TableName overrides the table name used by GORM
func (Candidate) TableName() string {
	return "candidates"
}

// BeforeCreate sets a UUID before creating the record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets a UUID before creating the record
func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewEvent creates a new event with the given parameters
func NewEvent(title, description string, isActive bool, startDate, endDate time.Time, candidates []Candidate) *Event {
	return &Event{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		IsActive:    isActive,
		StartDate:   startDate,
		EndDate:     endDate,
		Candidates:  candidates,
	}
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if e.Title == "" {
		return apperror.Validation("title is required")
	}
	if e.Description == "" {
		return apperror.Validation("description is required")
	}
	if e.StartDate.IsZero() {
		return apperror.Validation("startDate is required")
	}
	if e.EndDate.IsZero() {
		return apperror.Validation("endDate is required")
	}
	if e.EndDate.Before(e.StartDate) {
		return apperror.Validation("endDate must be after startDate")
	}
	if len(e.Candidates) == 0 {
		return apperror.Validation("at least one candidate is required")
	}
	for i := range e.Candidates {
		if err := e.Candidates[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the candidate data is valid
func (c *Candidate) Validate() error {
	if c.Name == "" {
		return apperror.Validation("candidate name is required")
	}
	if c.Position == "" {
		return apperror.Validation("candidate position is required")
	}
	if c.Sequence < 1 {
		return apperror.Validation("candidate sequence must be a positive number")
	}
	return nil
}

// HasCandidate reports whether the event owns the candidate with the given id
func (e *Event) HasCandidate(candidateID uuid.UUID) bool {
	for i := range e.Candidates {
		if e.Candidates[i].ID == candidateID {
			return true
		}
	}
	return false
}

// IsOpenAt reports whether the event window covers the given instant
func (e *Event) IsOpenAt(t time.Time) bool {
	return !t.Before(e.StartDate) && !t.After(e.EndDate)
}
