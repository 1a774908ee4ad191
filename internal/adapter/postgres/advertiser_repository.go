package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// AdvertiserRepository implements port.AdvertiserRepository using pgxpool.
type AdvertiserRepository struct {
	pool *pgxpool.Pool
}

// NewAdvertiserRepository returns a new repository instance.
func NewAdvertiserRepository(pool *pgxpool.Pool) *AdvertiserRepository {
	return &AdvertiserRepository{pool: pool}
}

func (r *AdvertiserRepository) List(ctx context.Context, f port.AdvertiserFilter) ([]domain.Advertiser, error) {
	query := `SELECT id, user_id, name, status, created_at, updated_at FROM advertisers WHERE 1=1`
	var args []any
	if f.ID != 0 {
		args = append(args, f.ID)
		query += fmt.Sprintf(" AND id = $%d", len(args))
	}
	if f.Name != "" {
		args = append(args, f.Name)
		query += fmt.Sprintf(" AND name = $%d", len(args))
	}
	if f.Status != 0 {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Advertiser, error) {
		var a domain.Advertiser
		err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	})
}

func (r *AdvertiserRepository) Get(ctx context.Context, id int64) (*domain.Advertiser, error) {
	var a domain.Advertiser
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, status, created_at, updated_at FROM advertisers WHERE id = $1`, id).
		Scan(&a.ID, &a.UserID, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdvertiserRepository) Create(ctx context.Context, a *domain.Advertiser) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return r.pool.QueryRow(ctx,
		`INSERT INTO advertisers (user_id, name, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		a.UserID, a.Name, a.Status, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
}

func (r *AdvertiserRepository) Update(ctx context.Context, a *domain.Advertiser) error {
	a.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE advertisers SET name = $1, status = $2, updated_at = $3 WHERE id = $4`,
		a.Name, a.Status, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}
