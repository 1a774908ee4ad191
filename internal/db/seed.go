package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"cedar-ads/internal/auth"
	"cedar-ads/internal/core/domain"
)

// Seed inserts demo data: an admin, one advertiser user with a native and a
// display campaign, one account rep assigned to that advertiser, and an API
// client per user. The client secret for every seeded client is "secret".
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	now := time.Now().UTC()

	users := []struct {
		id        int64
		email     string
		superuser bool
		staff     bool
		groups    []string
	}{
		{1, "admin@example.com", true, true, nil},
		{2, "advertiser@example.com", false, false, []string{domain.GroupAdvertisers}},
		{3, "rep@example.com", false, false, []string{domain.GroupAccountReps}},
	}
	for _, u := range users {
		_, err := pool.Exec(ctx, `INSERT INTO users (id, email, is_superuser, is_staff)
VALUES ($1,$2,$3,$4) ON CONFLICT DO NOTHING`, u.id, u.email, u.superuser, u.staff)
		if err != nil {
			return err
		}
		for _, g := range u.groups {
			_, err = pool.Exec(ctx, `INSERT INTO user_groups (user_id, group_name)
VALUES ($1,$2) ON CONFLICT DO NOTHING`, u.id, g)
			if err != nil {
				return err
			}
		}

		secretHash, err := auth.HashSecret("secret")
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `INSERT INTO oauth_clients (client_id, user_id, name, secret_hash, created_at)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`, uuid.NewString(), u.id, "API demo client", secretHash, now)
		if err != nil {
			return err
		}
	}

	_, err := pool.Exec(ctx, `INSERT INTO advertisers (id, user_id, name, status, created_at, updated_at)
VALUES (1, 2, 'Acme Media', $1, $2, $2) ON CONFLICT DO NOTHING`, domain.StatusActive, now)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `INSERT INTO account_rep_advertisers (user_id, advertiser_id)
VALUES (3, 1) ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	campaigns := []struct {
		id           int64
		name         string
		campaignType domain.CampaignType
	}{
		{1, "Acme Native Launch", domain.CampaignNative},
		{2, "Acme Display Retargeting", domain.CampaignDisplay},
	}
	for _, c := range campaigns {
		_, err = pool.Exec(ctx, `INSERT INTO campaigns
    (id, advertiser_id, name, campaign_type, status, daily_cap, monthly_cap, total_cap,
     bid_type, bid, min_bid, daily_frequency_cap, minutes_frequency, created_at, updated_at)
VALUES ($1, 1, $2, $3, $4, 100000000, 0, 500000000, $5, 500000, 100000, 0, 1440, $6, $6)
ON CONFLICT DO NOTHING`,
			c.id, c.name, c.campaignType, domain.StatusActive, domain.BidCPM, now)
		if err != nil {
			return err
		}
	}

	var adID int64
	err = pool.QueryRow(ctx, `INSERT INTO native_ads (campaign_id, name, title, url, status, created_at, updated_at)
VALUES (1, 'Launch ad', 'Try Acme today', 'https://example.com/acme', $1, $2, $2)
RETURNING id`, domain.StatusActive, now).Scan(&adID)
	if err != nil {
		return err
	}
	dataAssets := []struct {
		assetType int
		value     string
	}{
		{domain.DataSponsored, "Acme Inc."},
		{domain.DataRating, "4"},
		{domain.DataPrice, "9.99"},
	}
	for _, a := range dataAssets {
		_, err = pool.Exec(ctx, `INSERT INTO native_ad_data_assets (ad_id, asset_type, value)
VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`, adID, a.assetType, a.value)
		if err != nil {
			return err
		}
	}
	_, err = pool.Exec(ctx, `INSERT INTO native_ad_image_assets (ad_id, asset_type, filename, original_width, original_height)
VALUES ($1,$2,'acme-main.png',1200,627) ON CONFLICT DO NOTHING`, adID, domain.ImageMain)
	return err
}
