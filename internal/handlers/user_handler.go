package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/votelab/evote-api/internal/response"
	"github.com/votelab/evote-api/internal/services"
)

// UserHandler exposes user administration over HTTP
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUsers handles GET /api/users, admin only
func (h *UserHandler) GetUsers(c *gin.Context) {
	list, err := h.users.List(c.Query("keyword"), c.Query("role"), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", list)
}

// GetUserByID handles GET /api/users/:id, admin only
func (h *UserHandler) GetUserByID(c *gin.Context) {
	u, err := h.users.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", u)
}
