package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
	"golang.org/x/crypto/bcrypt"
)

// AccountService handles dashboard account management
type AccountService struct {
	repo repositories.AccountRepository

	// protected usernames may never be deleted through the API,
	// regardless of what the dashboard shows
	protected map[string]bool
}

// NewAccountService creates an account service backed by the database pool
func NewAccountService(pool *pgxpool.Pool, protectedUsernames []string) *AccountService {
	return NewAccountServiceWithRepo(repositories.NewAccountRepository(pool), protectedUsernames)
}

// NewAccountServiceWithRepo creates an account service with an explicit repository (for testing)
func NewAccountServiceWithRepo(repo repositories.AccountRepository, protectedUsernames []string) *AccountService {
	protected := make(map[string]bool, len(protectedUsernames))
	for _, name := range protectedUsernames {
		protected[name] = true
	}
	return &AccountService{repo: repo, protected: protected}
}

// List returns all accounts
func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.repo.List(ctx)
}

// Create registers a new account with a bcrypt-hashed password.
// Role defaults to lead when empty.
func (s *AccountService) Create(ctx context.Context, username, password, role string) (*models.Account, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if role == "" {
		role = string(models.RoleLead)
	}
	if !models.ValidRole(models.Role(role)) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.Role(role),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Update changes the username and/or role of an account. Only these two
// fields are updatable through this path; nil leaves a field unchanged.
func (s *AccountService) Update(ctx context.Context, id int64, username, role *string) (*models.Account, error) {
	if role != nil && !models.ValidRole(models.Role(*role)) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *role)
	}
	if username != nil && *username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}

	account, err := s.repo.Update(ctx, id, username, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if repositories.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// SetReviewAccess toggles whether the account may read audience reviews.
// Idempotent: setting the current value is not an error.
func (s *AccountService) SetReviewAccess(ctx context.Context, id int64, canViewReviews bool) (*models.Account, error) {
	account, err := s.repo.SetReviewAccess(ctx, id, canViewReviews)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review access: %w", err)
	}
	return account, nil
}

// Delete removes an account. Protected seed accounts are refused.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	if s.protected[account.Username] {
		return ErrProtectedAccount
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
