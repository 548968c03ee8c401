package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/votelab/evote-api/internal/apperror"
)

// Response is the standard API envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the envelope for failed requests
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}

// Success sends a success envelope with the given status
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 envelope
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// Accepted sends a 202 envelope, used for updates
func Accepted(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusAccepted, message, data)
}

// OK sends a 200 envelope
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// Fail sends an error envelope with the given status
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{
		Success: false,
		Error:   message,
		Code:    status,
	})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// Internal sends a 500 error
func Internal(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// Error maps an error from the service/repository layer to the right HTTP
// status using the apperror taxonomy. Errors outside the taxonomy become 500.
func Error(c *gin.Context, err error) {
	kind, ok := apperror.KindOf(err)
	if !ok {
		Internal(c, "Unexpected error occurred")
		return
	}

	msg := apperror.Message(err)
	switch kind {
	case apperror.KindValidation:
		BadRequest(c, msg)
	case apperror.KindNotFound:
		NotFound(c, msg)
	case apperror.KindConflict:
		Conflict(c, msg)
	case apperror.KindExternalService:
		Fail(c, http.StatusBadGateway, msg)
	default:
		Internal(c, msg)
	}
}
