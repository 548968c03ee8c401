package postgres

import (
	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/domain/vote"
)

// EventListFilter narrows and pages event listings
type EventListFilter struct {
	Keyword    string
	ActiveOnly bool
	Pagination PaginationParams
}

// EventList is a page of events plus pagination metadata
type EventList struct {
	Results   []*event.Event `json:"results"`
	Paginator Paginator      `json:"paginatorInfo"`
}

// EventRepository defines durable storage and lookup for events and their
// candidates. Lifecycle invariants (active exclusivity, candidate/vote
// cascades) are enforced here, inside one transaction per operation.
type EventRepository interface {
	Create(e *event.Event) error
	Update(id string, payload *event.Event) (*event.Event, error)
	Delete(id string) error
	GetByID(id string) (*event.Event, error)
	List(filter EventListFilter) (*EventList, error)
	GetActive() (*event.Event, error)
}

// VoteList is a page of votes plus pagination metadata
type VoteList struct {
	Results   []*vote.Vote `json:"results"`
	Paginator Paginator    `json:"paginatorInfo"`
}

// VoteRepository defines durable storage and lookup for cast votes. Create
// relies on the (user_id, event_id) unique constraint as the source of truth
// for duplicate prevention and translates its violation to a ConflictError.
type VoteRepository interface {
	Create(v *vote.Vote) error
	GetByUserAndEvent(userID, eventID string) (*vote.Vote, error)
	GetByEventPaginated(eventID string, params PaginationParams) (*VoteList, error)
	TallyByCandidate(eventID string) ([]vote.Tally, error)
}

// UserListFilter narrows and pages user listings
type UserListFilter struct {
	Keyword    string
	Role       string
	Pagination PaginationParams
}

// UserList is a page of users plus pagination metadata
type UserList struct {
	Results   []*user.User `json:"results"`
	Paginator Paginator    `json:"paginatorInfo"`
}

// UserRepository defines durable storage and lookup for users
type UserRepository interface {
	Create(u *user.User) error
	GetByID(id string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	Update(u *user.User) error
	List(filter UserListFilter) (*UserList, error)
}
