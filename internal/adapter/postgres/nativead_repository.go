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

// NativeAdRepository implements port.NativeAdRepository using pgxpool. Ads
// and their asset lists are written in one transaction; updates replace the
// stored assets wholesale.
type NativeAdRepository struct {
	pool *pgxpool.Pool
}

// NewNativeAdRepository returns a new repository instance.
func NewNativeAdRepository(pool *pgxpool.Pool) *NativeAdRepository {
	return &NativeAdRepository{pool: pool}
}

func (r *NativeAdRepository) List(ctx context.Context, f port.NativeAdFilter) ([]domain.NativeAd, error) {
	query := `SELECT id, campaign_id, name, title, url, status, created_at, updated_at
		FROM native_ads WHERE 1=1`
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
	if f.CampaignID != 0 {
		args = append(args, f.CampaignID)
		query += fmt.Sprintf(" AND campaign_id = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	ads, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NativeAd, error) {
		var ad domain.NativeAd
		err := row.Scan(&ad.ID, &ad.CampaignID, &ad.Name, &ad.Title, &ad.URL, &ad.Status, &ad.CreatedAt, &ad.UpdatedAt)
		return ad, err
	})
	if err != nil {
		return nil, err
	}
	for i := range ads {
		if err = r.loadAssets(ctx, &ads[i]); err != nil {
			return nil, err
		}
	}
	return ads, nil
}

func (r *NativeAdRepository) Get(ctx context.Context, id int64) (*domain.NativeAd, error) {
	var ad domain.NativeAd
	err := r.pool.QueryRow(ctx,
		`SELECT id, campaign_id, name, title, url, status, created_at, updated_at
		 FROM native_ads WHERE id = $1`, id).
		Scan(&ad.ID, &ad.CampaignID, &ad.Name, &ad.Title, &ad.URL, &ad.Status, &ad.CreatedAt, &ad.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err = r.loadAssets(ctx, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *NativeAdRepository) loadAssets(ctx context.Context, ad *domain.NativeAd) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, ad_id, asset_type, value FROM native_ad_data_assets WHERE ad_id = $1 ORDER BY id`, ad.ID)
	if err != nil {
		return err
	}
	ad.DataAssets, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NativeAdDataAsset, error) {
		var a domain.NativeAdDataAsset
		err := row.Scan(&a.ID, &a.AdID, &a.AssetType, &a.Value)
		return a, err
	})
	if err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, ad_id, asset_type, filename, original_width, original_height
		 FROM native_ad_image_assets WHERE ad_id = $1 ORDER BY id`, ad.ID)
	if err != nil {
		return err
	}
	ad.ImageAssets, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NativeAdImageAsset, error) {
		var a domain.NativeAdImageAsset
		err := row.Scan(&a.ID, &a.AdID, &a.AssetType, &a.Filename, &a.OriginalWidth, &a.OriginalHeight)
		return a, err
	})
	return err
}

func (r *NativeAdRepository) Create(ctx context.Context, ad *domain.NativeAd) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	now := time.Now().UTC()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	err = tx.QueryRow(ctx,
		`INSERT INTO native_ads (campaign_id, name, title, url, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		ad.CampaignID, ad.Name, ad.Title, ad.URL, ad.Status, ad.CreatedAt, ad.UpdatedAt).Scan(&ad.ID)
	if err != nil {
		return err
	}
	err = r.insertAssets(ctx, tx, ad)
	return err
}

// Update rewrites the ad row and replaces both asset lists.
func (r *NativeAdRepository) Update(ctx context.Context, ad *domain.NativeAd) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	ad.UpdatedAt = time.Now().UTC()
	res, err := tx.Exec(ctx,
		`UPDATE native_ads SET name = $1, title = $2, url = $3, status = $4, updated_at = $5
		 WHERE id = $6`,
		ad.Name, ad.Title, ad.URL, ad.Status, ad.UpdatedAt, ad.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		err = port.ErrNotFound
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM native_ad_data_assets WHERE ad_id = $1`, ad.ID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM native_ad_image_assets WHERE ad_id = $1`, ad.ID); err != nil {
		return err
	}
	err = r.insertAssets(ctx, tx, ad)
	return err
}

func (r *NativeAdRepository) insertAssets(ctx context.Context, tx pgx.Tx, ad *domain.NativeAd) error {
	for i := range ad.DataAssets {
		a := &ad.DataAssets[i]
		a.AdID = ad.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO native_ad_data_assets (ad_id, asset_type, value)
			 VALUES ($1,$2,$3) RETURNING id`,
			a.AdID, a.AssetType, a.Value).Scan(&a.ID)
		if err != nil {
			return err
		}
	}
	for i := range ad.ImageAssets {
		a := &ad.ImageAssets[i]
		a.AdID = ad.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO native_ad_image_assets (ad_id, asset_type, filename, original_width, original_height)
			 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			a.AdID, a.AssetType, a.Filename, a.OriginalWidth, a.OriginalHeight).Scan(&a.ID)
		if err != nil {
			return err
		}
	}
	return nil
}
