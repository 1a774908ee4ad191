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

const campaignColumns = `id, advertiser_id, name, campaign_type, status,
	daily_cap, monthly_cap, total_cap, start_date, end_date,
	bid_type, bid, min_bid, daily_frequency_cap, minutes_frequency,
	created_at, updated_at`

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func scanCampaign(row pgx.Row, c *domain.Campaign) error {
	return row.Scan(
		&c.ID, &c.AdvertiserID, &c.Name, &c.CampaignType, &c.Status,
		&c.DailyCap, &c.MonthlyCap, &c.TotalCap, &c.StartDate, &c.EndDate,
		&c.BidType, &c.Bid, &c.MinBid, &c.DailyFrequencyCap, &c.MinutesFrequency,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *CampaignRepository) List(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
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
	if f.AdvertiserID != 0 {
		args = append(args, f.AdvertiserID)
		query += fmt.Sprintf(" AND advertiser_id = $%d", len(args))
	}
	if f.CampaignType != 0 {
		args = append(args, f.CampaignType)
		query += fmt.Sprintf(" AND campaign_type = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := scanCampaign(row, &c)
		return c, err
	})
}

func (r *CampaignRepository) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	var c domain.Campaign
	err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.pool.QueryRow(ctx,
		`INSERT INTO campaigns (advertiser_id, name, campaign_type, status,
			daily_cap, monthly_cap, total_cap, start_date, end_date,
			bid_type, bid, min_bid, daily_frequency_cap, minutes_frequency,
			created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		 RETURNING id`,
		c.AdvertiserID, c.Name, c.CampaignType, c.Status,
		c.DailyCap, c.MonthlyCap, c.TotalCap, c.StartDate, c.EndDate,
		c.BidType, c.Bid, c.MinBid, c.DailyFrequencyCap, c.MinutesFrequency,
		c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
}

// Update persists every mutable column. The advertiser_id column is left out
// on purpose: the parent reference never changes after creation.
func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET name = $1, campaign_type = $2, status = $3,
			daily_cap = $4, monthly_cap = $5, total_cap = $6,
			start_date = $7, end_date = $8,
			bid_type = $9, bid = $10, min_bid = $11,
			daily_frequency_cap = $12, minutes_frequency = $13, updated_at = $14
		 WHERE id = $15`,
		c.Name, c.CampaignType, c.Status,
		c.DailyCap, c.MonthlyCap, c.TotalCap,
		c.StartDate, c.EndDate,
		c.BidType, c.Bid, c.MinBid,
		c.DailyFrequencyCap, c.MinutesFrequency, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}
