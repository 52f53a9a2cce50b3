package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/services"
)

// ReviewHandler handles audience feedback submission and moderation
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// SubmitReviewRequest represents the public submission body
type SubmitReviewRequest struct {
	UserName string `json:"userName" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
}

// HandleSubmit accepts an unauthenticated review from the public site
func (h *ReviewHandler) HandleSubmit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userName, comment and rating are required"})
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), req.UserName, req.Comment, req.Rating)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// HandleList returns all reviews for permitted callers
func (h *ReviewHandler) HandleList(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}

	reviews, err := h.reviewService.List(c.Request.Context(), models.Role(claims.Role), claims.CanViewReviews)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// UpdateReviewRequest represents the moderation body
type UpdateReviewRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleUpdateStatus moderates a review to APPROVED or REJECTED
func (h *ReviewHandler) HandleUpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	review, err := h.reviewService.UpdateStatus(c.Request.Context(), id, models.ReviewStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// HandleDelete removes a review
func (h *ReviewHandler) HandleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
