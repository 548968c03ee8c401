// Package middleware provides gin middleware for request logging and
// JWT-based authentication.
package middleware

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/votelab/evote-api/internal/auth"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/response"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id
	ContextUserID = "user_id"
	// ContextUserRole is the gin context key holding the authenticated role
	ContextUserRole = "user_role"
)

// RequestLogger returns a middleware function that logs request details
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logLevel := log.Info
		if status >= 400 {
			logLevel = log.Error
		} else if status >= 300 {
			logLevel = log.Warn
		}

		logLevel("Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"remote_addr", c.ClientIP(),
		)
	}
}

// Authenticate verifies the bearer token and stores the identity on the
// context. Requests without a valid token are rejected with 401.
func Authenticate(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.Unauthorized(c, "Authorization header must be a bearer token")
			c.Abort()
			return
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, identity.UserID.String())
		c.Set(ContextUserRole, identity.Role)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role does not match
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserRole)
		if !exists {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if value.(user.Role) != role {
			response.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user id stored on the context
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// UserRole returns the authenticated role stored on the context
func UserRole(c *gin.Context) user.Role {
	if value, exists := c.Get(ContextUserRole); exists {
		if role, ok := value.(user.Role); ok {
			return role
		}
	}
	return user.RoleDefaultUser
}
