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

// recentLogLimit caps the audit listing at the most recent entries
const recentLogLimit = 100

// AuditService exposes the access log to the dashboard
type AuditService struct {
	repo repositories.AccessLogRepository
}

// NewAuditService creates an audit service backed by the database pool
func NewAuditService(pool *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repositories.NewAccessLogRepository(pool)}
}

// NewAuditServiceWithRepo creates an audit service with an explicit repository (for testing)
func NewAuditServiceWithRepo(repo repositories.AccessLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// ListRecent returns the most recent entries, newest first, joined with
// the acting username when it still resolves
func (s *AuditService) ListRecent(ctx context.Context) ([]*repositories.AccessLogWithActor, error) {
	return s.repo.ListRecent(ctx, recentLogLimit)
}

// UpdateAction rewrites the action text of one entry
func (s *AuditService) UpdateAction(ctx context.Context, id int64, action string) (*models.AccessLogEntry, error) {
	if action == "" {
		return nil, fmt.Errorf("%w: action is required", ErrValidation)
	}

	entry, err := s.repo.UpdateAction(ctx, id, action)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update log entry: %w", err)
	}
	return entry, nil
}

// Delete removes one entry. Irreversible.
func (s *AuditService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete log entry: %w", err)
	}
	return nil
}

// Clear wipes the entire access log and returns how many entries were
// removed. Irreversible.
func (s *AuditService) Clear(ctx context.Context) (int64, error) {
	return s.repo.Clear(ctx)
}
