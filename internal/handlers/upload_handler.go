package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/votelab/evote-api/internal/objectstore"
	"github.com/votelab/evote-api/internal/response"
)

// UploadHandler stores candidate photos in the configured object store
type UploadHandler struct {
	store objectstore.Store
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store objectstore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// maxPhotoSize limits candidate photo uploads to 5MB
const maxPhotoSize = 5 << 20

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadPhoto handles POST /api/upload
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	if h.store == nil {
		response.Fail(c, 503, "File uploads are not configured")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		response.BadRequest(c, "File size exceeds 5MB limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedPhotoTypes[contentType] {
		response.BadRequest(c, "File type not allowed, expected JPEG, PNG or WEBP")
		return
	}

	url, err := h.store.Upload(c.Request.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "File has been uploaded", gin.H{"url": url})
}
