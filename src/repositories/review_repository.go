package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/models"
)

const reviewColumns = "id, user_name, comment, rating, status, created_at"

// pgxReviewRepository is the PostgreSQL-backed ReviewRepository
type pgxReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a PostgreSQL-backed review repository
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &pgxReviewRepository{pool: pool}
}

func scanReview(row pgx.Row) (*models.Review, error) {
	review := &models.Review{}
	err := row.Scan(
		&review.ID, &review.UserName, &review.Comment,
		&review.Rating, &review.Status, &review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *pgxReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_name, comment, rating, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		review.UserName, review.Comment, review.Rating, review.Status,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *pgxReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews ORDER BY created_at DESC, id DESC"
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *pgxReviewRepository) UpdateStatus(ctx context.Context, id int64, status models.ReviewStatus) (*models.Review, error) {
	query := "UPDATE reviews SET status = $2 WHERE id = $1 RETURNING " + reviewColumns
	return scanReview(r.pool.QueryRow(ctx, query, id, status))
}

func (r *pgxReviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

var _ ReviewRepository = (*pgxReviewRepository)(nil)
