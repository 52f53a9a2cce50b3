package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/reelclub/leads-backend/src/models"
)

// AccountRepository defines the interface for account data access.
// Not-found conditions surface as pgx.ErrNoRows; uniqueness violations
// surface as the underlying pgconn error (see IsUniqueViolation).
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)

	// Update applies only the provided fields; nil leaves a field unchanged.
	Update(ctx context.Context, id int64, username, role *string) (*models.Account, error)
	SetReviewAccess(ctx context.Context, id int64, canViewReviews bool) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

// AccessLogRepository defines the interface for access log data access
type AccessLogRepository interface {
	Create(ctx context.Context, entry *models.AccessLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]*AccessLogWithActor, error)
	UpdateAction(ctx context.Context, id int64, action string) (*models.AccessLogEntry, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	List(ctx context.Context) ([]*models.Review, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReviewStatus) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

// AccessLogWithActor is an access log entry joined with the acting
// account's username and role, when the account still resolves
type AccessLogWithActor struct {
	models.AccessLogEntry
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

// IsUniqueViolation reports whether err is a unique constraint violation
// (SQLSTATE 23505), which is how username uniqueness surfaces
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
