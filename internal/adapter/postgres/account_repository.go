package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// AccountRepository implements port.AccountRepository using pgxpool. It
// resolves the full role context of a principal: flags, group memberships,
// the advertiser a user owns and the advertiser set assigned to a rep.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a new repository instance.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) GetPrincipal(ctx context.Context, userID int64) (*domain.Principal, error) {
	var p domain.Principal
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, is_superuser, is_staff FROM users WHERE id = $1`, userID).
		Scan(&p.UserID, &p.Email, &p.IsSuperuser, &p.IsStaff)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT group_name FROM user_groups WHERE user_id = $1 ORDER BY group_name`, userID)
	if err != nil {
		return nil, err
	}
	p.Groups, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var g string
		err := row.Scan(&g)
		return g, err
	})
	if err != nil {
		return nil, err
	}

	if p.InGroup(domain.GroupAdvertisers) {
		err = r.pool.QueryRow(ctx,
			`SELECT id FROM advertisers WHERE user_id = $1 ORDER BY id LIMIT 1`, userID).
			Scan(&p.AdvertiserID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	if p.InGroup(domain.GroupAccountReps) {
		rows, err = r.pool.Query(ctx,
			`SELECT advertiser_id FROM account_rep_advertisers WHERE user_id = $1 ORDER BY advertiser_id`, userID)
		if err != nil {
			return nil, err
		}
		p.RepAdvertiserIDs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (int64, error) {
			var id int64
			err := row.Scan(&id)
			return id, err
		})
		if err != nil {
			return nil, err
		}
	}

	return &p, nil
}

func (r *AccountRepository) GetClient(ctx context.Context, clientID string) (*domain.APIClient, error) {
	var c domain.APIClient
	err := r.pool.QueryRow(ctx,
		`SELECT client_id, user_id, name, secret_hash, created_at FROM oauth_clients WHERE client_id = $1`, clientID).
		Scan(&c.ClientID, &c.UserID, &c.Name, &c.SecretHash, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AccountRepository) GetClientByUser(ctx context.Context, userID int64) (*domain.APIClient, error) {
	var c domain.APIClient
	err := r.pool.QueryRow(ctx,
		`SELECT client_id, user_id, name, secret_hash, created_at FROM oauth_clients WHERE user_id = $1 ORDER BY created_at LIMIT 1`, userID).
		Scan(&c.ClientID, &c.UserID, &c.Name, &c.SecretHash, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AccountRepository) CreateClient(ctx context.Context, c *domain.APIClient) error {
	c.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO oauth_clients (client_id, user_id, name, secret_hash, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		c.ClientID, c.UserID, c.Name, c.SecretHash, c.CreatedAt)
	return err
}
