package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/repositories"
	"github.com/reelclub/leads-backend/src/services"
)

// AuditHandler exposes the access log to the dashboard
type AuditHandler struct {
	auditService *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// HandleList returns the most recent access log entries, newest first
func (h *AuditHandler) HandleList(c *gin.Context) {
	entries, err := h.auditService.ListRecent(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []*repositories.AccessLogWithActor{}
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateLogRequest represents the request body for editing an entry
type UpdateLogRequest struct {
	Action string `json:"action" binding:"required"`
}

// HandleUpdate rewrites the action text of one entry
func (h *AuditHandler) HandleUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateLogRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	entry, err := h.auditService.UpdateAction(c.Request.Context(), id, req.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// HandleDelete removes one entry
func (h *AuditHandler) HandleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.auditService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "log deleted"})
}

// HandleClear wipes the whole access log
func (h *AuditHandler) HandleClear(c *gin.Context) {
	deleted, err := h.auditService.Clear(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "all logs cleared",
		"deleted": deleted,
	})
}
