package common

import "github.com/google/uuid"

// SharedEvent represents the minimal Event structure used across domains
type SharedEvent struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title string    `json:"title"`
}

// SharedUser represents the minimal User structure used across domains
type SharedUser struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name"`
}

// SharedCandidate represents the minimal Candidate structure used across domains
type SharedCandidate struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name"`
	EventID uuid.UUID `json:"event_id"`
}

func (SharedEvent) TableName() string {
	return "events"
}

func (SharedUser) TableName() string {
	return "users"
}

func (SharedCandidate) TableName() string {
	return "candidates"
}
