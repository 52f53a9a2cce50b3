package mock

import (
	"context"

	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
)

// AccountRepository is a mock implementation of repositories.AccountRepository
type AccountRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc          func(ctx context.Context, account *models.Account) error
	GetByIDFunc         func(ctx context.Context, id int64) (*models.Account, error)
	GetByUsernameFunc   func(ctx context.Context, username string) (*models.Account, error)
	ListFunc            func(ctx context.Context) ([]*models.Account, error)
	UpdateFunc          func(ctx context.Context, id int64, username, role *string) (*models.Account, error)
	SetReviewAccessFunc func(ctx context.Context, id int64, canViewReviews bool) (*models.Account, error)
	DeleteFunc          func(ctx context.Context, id int64) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewAccountRepository creates a new mock account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	m.Calls["Create"] = append(m.Calls["Create"], account)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

func (m *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	m.Calls["GetByUsername"] = append(m.Calls["GetByUsername"], username)
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	m.Calls["List"] = append(m.Calls["List"], nil)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *AccountRepository) Update(ctx context.Context, id int64, username, role *string) (*models.Account, error) {
	m.Calls["Update"] = append(m.Calls["Update"], id)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, username, role)
	}
	return nil, nil
}

func (m *AccountRepository) SetReviewAccess(ctx context.Context, id int64, canViewReviews bool) (*models.Account, error) {
	m.Calls["SetReviewAccess"] = append(m.Calls["SetReviewAccess"], id)
	if m.SetReviewAccessFunc != nil {
		return m.SetReviewAccessFunc(ctx, id, canViewReviews)
	}
	return nil, nil
}

func (m *AccountRepository) Delete(ctx context.Context, id int64) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Ensure AccountRepository implements the interface
var _ repositories.AccountRepository = (*AccountRepository)(nil)
