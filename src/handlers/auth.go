package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/services"
)

// AuthHandler handles login and session introspection
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin authenticates a dashboard user and returns a JWT token
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	result, err := h.authService.Authenticate(
		c.Request.Context(),
		req.Username, req.Password,
		c.ClientIP(), c.Request.UserAgent(),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":             result.Account.ID,
			"username":       result.Account.Username,
			"role":           result.Account.Role,
			"canViewReviews": result.Account.CanViewReviews,
		},
	})
}

// HandleMe returns the account summary of the authenticated caller
func (h *AuthHandler) HandleMe(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}

	// Break-glass sessions have no stored account; echo the claims
	if claims.AccountID == 0 {
		c.JSON(http.StatusOK, gin.H{
			"id":             claims.AccountID,
			"username":       claims.Username,
			"role":           claims.Role,
			"canViewReviews": claims.CanViewReviews,
		})
		return
	}

	account, err := h.authService.GetAccountByID(c.Request.Context(), claims.AccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             account.ID,
		"username":       account.Username,
		"role":           account.Role,
		"canViewReviews": account.CanViewReviews,
	})
}
