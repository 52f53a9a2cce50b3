package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
)

// ReviewService handles audience feedback submission and moderation
type ReviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates a review service backed by the database pool
func NewReviewService(pool *pgxpool.Pool) *ReviewService {
	return &ReviewService{repo: repositories.NewReviewRepository(pool)}
}

// NewReviewServiceWithRepo creates a review service with an explicit repository (for testing)
func NewReviewServiceWithRepo(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Submit creates a PENDING review from the public site
func (s *ReviewService) Submit(ctx context.Context, userName, comment string, rating int) (*models.Review, error) {
	if userName == "" {
		return nil, fmt.Errorf("%w: userName is required", ErrValidation)
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	review := &models.Review{
		UserName: userName,
		Comment:  comment,
		Rating:   rating,
		Status:   models.ReviewStatusPending,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// List returns all reviews, newest first. Admins always see the list;
// other roles only when their account carries the review flag.
func (s *ReviewService) List(ctx context.Context, callerRole models.Role, canViewReviews bool) ([]*models.Review, error) {
	if callerRole != models.RoleAdmin && !canViewReviews {
		return nil, ErrReviewAccessDenied
	}
	return s.repo.List(ctx)
}

// UpdateStatus moderates a review. Only APPROVED and REJECTED are legal
// targets; re-applying a status is an idempotent overwrite.
func (s *ReviewService) UpdateStatus(ctx context.Context, id int64, status models.ReviewStatus) (*models.Review, error) {
	if status != models.ReviewStatusApproved && status != models.ReviewStatusRejected {
		return nil, ErrInvalidStatus
	}

	review, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
