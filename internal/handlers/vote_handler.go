package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/votelab/evote-api/internal/middleware"
	"github.com/votelab/evote-api/internal/response"
	"github.com/votelab/evote-api/internal/services"
)

// VoteHandler exposes vote casting over HTTP
type VoteHandler struct {
	votes *services.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// CreateVoteRequest is the vote-cast payload; the event comes from the URL
// and the user from the access token.
type CreateVoteRequest struct {
	CandidateID string `json:"candidateId" binding:"required"`
}

// SubmitVote handles POST /api/events/:id/vote
func (h *VoteHandler) SubmitVote(c *gin.Context) {
	var req CreateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "candidateId is required")
		return
	}

	v, err := h.votes.RecordVote(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.CandidateID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vote has been created", v)
}
