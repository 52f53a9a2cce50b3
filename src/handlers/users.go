package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/services"
)

// UserHandler handles account management for the dashboard
type UserHandler struct {
	accountService *services.AccountService
}

// NewUserHandler creates a new user handler
func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

// parseID parses the :id route parameter, responding 400 on garbage
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// HandleList returns all accounts, password hashes excluded
func (h *UserHandler) HandleList(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// CreateUserRequest represents the request body for account creation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// HandleCreate registers a new account
func (h *UserHandler) HandleCreate(c *gin.Context) {
	var req CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// UpdateUserRequest represents the request body for account updates.
// Only username and role are updatable; absent fields stay unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

// HandleUpdate changes an account's username and/or role
func (h *UserHandler) HandleUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), id, req.Username, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// SetPermissionsRequest represents the request body for the review flag
type SetPermissionsRequest struct {
	CanViewReviews *bool `json:"canViewReviews" binding:"required"`
}

// HandleSetPermissions toggles whether the account may read reviews
func (h *UserHandler) HandleSetPermissions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req SetPermissionsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "canViewReviews is required"})
		return
	}

	account, err := h.accountService.SetReviewAccess(c.Request.Context(), id, *req.CanViewReviews)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             account.ID,
		"canViewReviews": account.CanViewReviews,
	})
}

// HandleDelete removes an account. Protected seed accounts are refused
// server-side regardless of what the dashboard hides.
func (h *UserHandler) HandleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
