package mock

import (
	"context"

	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
)

// ReviewRepository is a mock implementation of repositories.ReviewRepository
type ReviewRepository struct {
	CreateFunc       func(ctx context.Context, review *models.Review) error
	ListFunc         func(ctx context.Context) ([]*models.Review, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status models.ReviewStatus) (*models.Review, error)
	DeleteFunc       func(ctx context.Context, id int64) error

	Calls map[string][]interface{}
}

// NewReviewRepository creates a new mock review repository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	m.Calls["Create"] = append(m.Calls["Create"], review)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil
}

func (m *ReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	m.Calls["List"] = append(m.Calls["List"], nil)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *ReviewRepository) UpdateStatus(ctx context.Context, id int64, status models.ReviewStatus) (*models.Review, error) {
	m.Calls["UpdateStatus"] = append(m.Calls["UpdateStatus"], id)
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *ReviewRepository) Delete(ctx context.Context, id int64) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repositories.ReviewRepository = (*ReviewRepository)(nil)
