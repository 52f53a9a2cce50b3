package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// allowed image extensions, lowercased
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// UploadHandler stores dashboard image uploads on local disk
type UploadHandler struct {
	uploadDir string
	baseURL   string
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadDir, baseURL string) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// HandleUpload accepts a multipart image and returns its public URL.
// Filenames are regenerated server-side so client input never reaches
// the filesystem.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	filename := uuid.New().String() + ext
	dest := filepath.Join(h.uploadDir, filename)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		log.Error().Err(err).Str("dest", dest).Msg("failed to store upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": fmt.Sprintf("%s/uploads/%s", h.baseURL, filename),
	})
}
