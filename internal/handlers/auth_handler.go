package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/votelab/evote-api/internal/middleware"
	"github.com/votelab/evote-api/internal/response"
	"github.com/votelab/evote-api/internal/services"
)

// AuthHandler exposes registration and login over HTTP
type AuthHandler struct {
	users *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and password are required")
		return
	}

	result, err := h.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account has been created", result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	result, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}

// Me handles GET /api/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.users.GetByID(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", u)
}
