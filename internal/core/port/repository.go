package port

import (
	"context"

	"cedar-ads/internal/core/domain"
)

// AdvertiserFilter narrows advertiser listings. Zero values mean "any".
type AdvertiserFilter struct {
	ID     int64
	Name   string
	Status domain.Status
}

// AdvertiserRepository is the outbound port for advertiser persistence.
// Implementations return ErrNotFound for missing rows.
type AdvertiserRepository interface {
	List(ctx context.Context, f AdvertiserFilter) ([]domain.Advertiser, error)
	Get(ctx context.Context, id int64) (*domain.Advertiser, error)
	Create(ctx context.Context, a *domain.Advertiser) error
	Update(ctx context.Context, a *domain.Advertiser) error
}

// CampaignFilter narrows campaign listings. Zero values mean "any".
type CampaignFilter struct {
	ID           int64
	Name         string
	Status       domain.Status
	AdvertiserID int64
	CampaignType domain.CampaignType
}

// CampaignRepository is the outbound port for campaign persistence.
type CampaignRepository interface {
	List(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)
	Get(ctx context.Context, id int64) (*domain.Campaign, error)
	Create(ctx context.Context, c *domain.Campaign) error
	Update(ctx context.Context, c *domain.Campaign) error
}

// NativeAdFilter narrows native ad listings. Zero values mean "any".
type NativeAdFilter struct {
	ID         int64
	Name       string
	Status     domain.Status
	CampaignID int64
}

// NativeAdRepository is the outbound port for native ad persistence. Create
// and Update persist the ad together with its full asset lists in a single
// transaction; Update replaces the stored asset lists wholesale.
type NativeAdRepository interface {
	List(ctx context.Context, f NativeAdFilter) ([]domain.NativeAd, error)
	Get(ctx context.Context, id int64) (*domain.NativeAd, error)
	Create(ctx context.Context, ad *domain.NativeAd) error
	Update(ctx context.Context, ad *domain.NativeAd) error
}

// AccountRepository resolves principals and OAuth clients.
type AccountRepository interface {
	// GetPrincipal loads a user with its role flags, group memberships,
	// owned advertiser id and assigned advertiser set.
	GetPrincipal(ctx context.Context, userID int64) (*domain.Principal, error)
	GetClient(ctx context.Context, clientID string) (*domain.APIClient, error)
	GetClientByUser(ctx context.Context, userID int64) (*domain.APIClient, error)
	CreateClient(ctx context.Context, c *domain.APIClient) error
}

// AuditSink accepts append-only authentication records. Callers treat the
// write as fire-and-forget: a sink failure is logged and swallowed, never
// surfaced to the request that triggered it.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuthLog) error
}
