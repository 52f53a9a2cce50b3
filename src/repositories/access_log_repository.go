package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/models"
)

// pgxAccessLogRepository is the PostgreSQL-backed AccessLogRepository
type pgxAccessLogRepository struct {
	pool *pgxpool.Pool
}

// NewAccessLogRepository creates a PostgreSQL-backed access log repository
func NewAccessLogRepository(pool *pgxpool.Pool) AccessLogRepository {
	return &pgxAccessLogRepository{pool: pool}
}

func (r *pgxAccessLogRepository) Create(ctx context.Context, entry *models.AccessLogEntry) error {
	query := `
		INSERT INTO access_logs (account_id, action, status, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		entry.AccountID, entry.Action, entry.Status, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *pgxAccessLogRepository) ListRecent(ctx context.Context, limit int) ([]*AccessLogWithActor, error) {
	query := `
		SELECT l.id, l.account_id, l.action, l.status, l.ip_address, l.user_agent, l.created_at,
		       a.username, a.role
		FROM access_logs l
		LEFT JOIN accounts a ON a.id = l.account_id
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*AccessLogWithActor
	for rows.Next() {
		entry := &AccessLogWithActor{}
		var ip, agent *string
		err := rows.Scan(
			&entry.ID, &entry.AccountID, &entry.Action, &entry.Status,
			&ip, &agent, &entry.CreatedAt,
			&entry.Username, &entry.Role,
		)
		if err != nil {
			return nil, err
		}
		if ip != nil {
			entry.IPAddress = *ip
		}
		if agent != nil {
			entry.UserAgent = *agent
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *pgxAccessLogRepository) UpdateAction(ctx context.Context, id int64, action string) (*models.AccessLogEntry, error) {
	query := `
		UPDATE access_logs SET action = $2 WHERE id = $1
		RETURNING id, account_id, action, status, ip_address, user_agent, created_at
	`
	entry := &models.AccessLogEntry{}
	var ip, agent *string
	err := r.pool.QueryRow(ctx, query, id, action).Scan(
		&entry.ID, &entry.AccountID, &entry.Action, &entry.Status,
		&ip, &agent, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ip != nil {
		entry.IPAddress = *ip
	}
	if agent != nil {
		entry.UserAgent = *agent
	}
	return entry, nil
}

func (r *pgxAccessLogRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM access_logs WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgxAccessLogRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM access_logs")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

var _ AccessLogRepository = (*pgxAccessLogRepository)(nil)
