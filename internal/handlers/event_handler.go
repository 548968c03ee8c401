package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/event"
	"github.com/votelab/evote-api/internal/middleware"
	"github.com/votelab/evote-api/internal/response"
	"github.com/votelab/evote-api/internal/services"
	"github.com/votelab/evote-api/internal/storage/postgres"
)

// EventHandler exposes the event lifecycle over HTTP
type EventHandler struct {
	events *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// CandidateRequest is one candidate in an event payload. ID is set when the
// payload refers to an existing candidate; candidates omitted from an update
// payload are deleted together with their votes.
type CandidateRequest struct {
	ID       string `json:"id"`
	Photo    string `json:"photo"`
	Name     string `json:"name" binding:"required"`
	Position string `json:"position" binding:"required"`
	Sequence int    `json:"sequence" binding:"required"`
	Visi     string `json:"visi"`
	Misi     string `json:"misi"`
	Comment  string `json:"comment"`
}

// EventRequest is the create/update payload for an event
type EventRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	IsActive    bool               `json:"isActive"`
	StartDate   string             `json:"startDate" binding:"required"`
	EndDate     string             `json:"endDate" binding:"required"`
	Candidates  []CandidateRequest `json:"candidates"`
}

// parseDate accepts RFC 3339 timestamps and plain dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// toDomain converts the request payload into the domain model
func (req *EventRequest) toDomain() (*event.Event, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperror.Validation("startDate must be a valid date")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, apperror.Validation("endDate must be a valid date")
	}

	candidates := make([]event.Candidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		candidate := event.Candidate{
			Photo:    c.Photo,
			Name:     c.Name,
			Position: c.Position,
			Sequence: c.Sequence,
			Visi:     c.Visi,
			Misi:     c.Misi,
			Comment:  c.Comment,
		}
		if c.ID != "" {
			id, err := uuid.Parse(c.ID)
			if err != nil {
				return nil, apperror.Validation("candidate id must be a valid UUID")
			}
			candidate.ID = id
		}
		candidates = append(candidates, candidate)
	}

	return &event.Event{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
		StartDate:   startDate,
		EndDate:     endDate,
		Candidates:  candidates,
	}, nil
}

// paginationFromQuery reads the limitParam/pageParam query parameters
func paginationFromQuery(c *gin.Context) postgres.PaginationParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limitParam", "10"))
	page, _ := strconv.Atoi(c.DefaultQuery("pageParam", "1"))
	return postgres.PaginationParams{Limit: limit, Page: page}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	payload, err := req.toDomain()
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.events.Create(payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Event has been created", created)
}

// UpdateEvent handles PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	payload, err := req.toDomain()
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.events.Update(c.Param("id"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, "Event has been updated", updated)
}

// DeleteEvent handles DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.events.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Event has been deleted", nil)
}

// GetEventByID handles GET /api/events/:id
func (h *EventHandler) GetEventByID(c *gin.Context) {
	detail, err := h.events.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", detail)
}

// GetEvents handles GET /api/events
func (h *EventHandler) GetEvents(c *gin.Context) {
	list, err := h.events.List(middleware.UserRole(c), c.Query("keyword"), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", list)
}

// GetActiveEvent handles GET /api/events/active
func (h *EventHandler) GetActiveEvent(c *gin.Context) {
	detail, err := h.events.GetActive(paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", detail)
}
