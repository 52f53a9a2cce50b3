package mock

import (
	"context"

	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
)

// AccessLogRepository is a mock implementation of repositories.AccessLogRepository
type AccessLogRepository struct {
	CreateFunc       func(ctx context.Context, entry *models.AccessLogEntry) error
	ListRecentFunc   func(ctx context.Context, limit int) ([]*repositories.AccessLogWithActor, error)
	UpdateActionFunc func(ctx context.Context, id int64, action string) (*models.AccessLogEntry, error)
	DeleteFunc       func(ctx context.Context, id int64) error
	ClearFunc        func(ctx context.Context) (int64, error)

	// Entries records every entry passed to Create, in order
	Entries []*models.AccessLogEntry
	Calls   map[string][]interface{}
}

// NewAccessLogRepository creates a new mock access log repository
func NewAccessLogRepository() *AccessLogRepository {
	return &AccessLogRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AccessLogRepository) Create(ctx context.Context, entry *models.AccessLogEntry) error {
	m.Calls["Create"] = append(m.Calls["Create"], entry)
	m.Entries = append(m.Entries, entry)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *AccessLogRepository) ListRecent(ctx context.Context, limit int) ([]*repositories.AccessLogWithActor, error) {
	m.Calls["ListRecent"] = append(m.Calls["ListRecent"], limit)
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *AccessLogRepository) UpdateAction(ctx context.Context, id int64, action string) (*models.AccessLogEntry, error) {
	m.Calls["UpdateAction"] = append(m.Calls["UpdateAction"], id)
	if m.UpdateActionFunc != nil {
		return m.UpdateActionFunc(ctx, id, action)
	}
	return nil, nil
}

func (m *AccessLogRepository) Delete(ctx context.Context, id int64) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *AccessLogRepository) Clear(ctx context.Context) (int64, error) {
	m.Calls["Clear"] = append(m.Calls["Clear"], nil)
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return 0, nil
}

var _ repositories.AccessLogRepository = (*AccessLogRepository)(nil)
