package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/models"
)

const accountColumns = "id, username, password_hash, role, can_view_reviews, created_at"

// pgxAccountRepository is the PostgreSQL-backed AccountRepository
type pgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a PostgreSQL-backed account repository
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &pgxAccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.Role, &account.CanViewReviews, &account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *pgxAccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (username, password_hash, role, can_view_reviews)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		account.Username, account.PasswordHash, account.Role, account.CanViewReviews,
	).Scan(&account.ID, &account.CreatedAt)
}

func (r *pgxAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns)
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE username = $1", accountColumns)
	return scanAccount(r.pool.QueryRow(ctx, query, username))
}

func (r *pgxAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts ORDER BY created_at ASC", accountColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update touches only the username and role columns. Field updates are
// explicit rather than generic so nothing else can be written through
// this path.
func (r *pgxAccountRepository) Update(ctx context.Context, id int64, username, role *string) (*models.Account, error) {
	query := fmt.Sprintf(`
		UPDATE accounts
		SET username = COALESCE($2, username),
		    role = COALESCE($3, role)
		WHERE id = $1
		RETURNING %s
	`, accountColumns)
	return scanAccount(r.pool.QueryRow(ctx, query, id, username, role))
}

func (r *pgxAccountRepository) SetReviewAccess(ctx context.Context, id int64, canViewReviews bool) (*models.Account, error) {
	query := fmt.Sprintf(`
		UPDATE accounts SET can_view_reviews = $2 WHERE id = $1
		RETURNING %s
	`, accountColumns)
	return scanAccount(r.pool.QueryRow(ctx, query, id, canViewReviews))
}

func (r *pgxAccountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Ensure the implementation satisfies the interface
var _ AccountRepository = (*pgxAccountRepository)(nil)
