package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/logging"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	// tokenTTL is the lifetime of a normal session token
	tokenTTL = 24 * time.Hour
	// breakGlassTokenTTL is the shortened lifetime of an emergency session
	breakGlassTokenTTL = 4 * time.Hour
)

// AuthService verifies credentials, issues session tokens and records
// every login attempt in the access log
type AuthService struct {
	accounts repositories.AccountRepository
	logs     repositories.AccessLogRepository
	logger   zerolog.Logger

	// Break-glass emergency credential. Opt-in via configuration,
	// compared against a bcrypt hash, and every use is written to the
	// access log.
	breakGlassUsername string
	breakGlassHash     string
}

// LoginResult is the outcome of a successful authentication
type LoginResult struct {
	Token   string
	Account *models.Account
}

// NewAuthService creates an auth service backed by the database pool
func NewAuthService(pool *pgxpool.Pool, breakGlassUsername, breakGlassHash string) *AuthService {
	return &AuthService{
		accounts:           repositories.NewAccountRepository(pool),
		logs:               repositories.NewAccessLogRepository(pool),
		logger:             logging.NewLogger("auth"),
		breakGlassUsername: breakGlassUsername,
		breakGlassHash:     breakGlassHash,
	}
}

// NewAuthServiceWithRepos creates an auth service with explicit repositories (for testing)
func NewAuthServiceWithRepos(accounts repositories.AccountRepository, logs repositories.AccessLogRepository, breakGlassUsername, breakGlassHash string) *AuthService {
	return &AuthService{
		accounts:           accounts,
		logs:               logs,
		logger:             logging.NewLogger("auth"),
		breakGlassUsername: breakGlassUsername,
		breakGlassHash:     breakGlassHash,
	}
}

// Authenticate verifies a username/password pair and returns a signed
// session token. Every attempt writes exactly one access log entry.
func (s *AuthService) Authenticate(ctx context.Context, username, password, ipAddress, userAgent string) (*LoginResult, error) {
	if s.isBreakGlass(username, password) {
		return s.breakGlassLogin(ctx, ipAddress, userAgent)
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown username: log with no account reference so the
			// attempted name is not leaked into the audit trail
			s.recordAttempt(ctx, nil, models.ActionLogin, models.LogStatusFailure, ipAddress, userAgent)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.recordAttempt(ctx, &account.ID, models.ActionLogin, models.LogStatusFailure, ipAddress, userAgent)
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(account.ID, account.Username, string(account.Role), account.CanViewReviews, tokenTTL)
	if err != nil {
		return nil, err
	}

	s.recordAttempt(ctx, &account.ID, models.ActionLogin, models.LogStatusSuccess, ipAddress, userAgent)

	return &LoginResult{Token: token, Account: account}, nil
}

// GetAccountByID loads the account summary for an authenticated caller
func (s *AuthService) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// isBreakGlass checks the emergency credential. Disabled unless both
// username and password hash are configured.
func (s *AuthService) isBreakGlass(username, password string) bool {
	if s.breakGlassUsername == "" || s.breakGlassHash == "" {
		return false
	}
	if username != s.breakGlassUsername {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.breakGlassHash), []byte(password)) == nil
}

// breakGlassLogin issues a short-lived admin-equivalent token and
// records the use. Unlike the rest of the login path, the session is
// not tied to a stored account.
func (s *AuthService) breakGlassLogin(ctx context.Context, ipAddress, userAgent string) (*LoginResult, error) {
	token, err := middleware.GenerateToken(0, s.breakGlassUsername, string(models.RoleAdmin), true, breakGlassTokenTTL)
	if err != nil {
		return nil, err
	}

	s.recordAttempt(ctx, nil, models.ActionBreakGlassLogin, models.LogStatusSuccess, ipAddress, userAgent)
	s.logger.Warn().Str("username", s.breakGlassUsername).Msg("break-glass credential used")

	return &LoginResult{
		Token: token,
		Account: &models.Account{
			Username:       s.breakGlassUsername,
			Role:           models.RoleAdmin,
			CanViewReviews: true,
		},
	}, nil
}

// recordAttempt writes one access log entry. A failed write is logged
// but does not fail the login itself.
func (s *AuthService) recordAttempt(ctx context.Context, accountID *int64, action string, status models.LogStatus, ipAddress, userAgent string) {
	entry := &models.AccessLogEntry{
		AccountID: accountID,
		Action:    action,
		Status:    status,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("failed to record access log entry")
	}
}
