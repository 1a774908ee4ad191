package port

import (
	"context"
	"time"

	"cedar-ads/internal/core/domain"
)

// AdvertiserUpdate is a partial update; nil fields are left untouched.
type AdvertiserUpdate struct {
	Name   *string
	Status *domain.Status
}

// AdvertiserUseCase mediates advertiser CRUD behind the access rules.
type AdvertiserUseCase interface {
	List(ctx context.Context, p domain.Principal, f AdvertiserFilter) ([]domain.Advertiser, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.Advertiser, error)
	Create(ctx context.Context, p domain.Principal, a *domain.Advertiser) error
	Update(ctx context.Context, p domain.Principal, id int64, upd AdvertiserUpdate) (*domain.Advertiser, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}

// CampaignUpdate is a partial update; nil fields are left untouched.
// AdvertiserID is accepted in payloads but always dropped: the parent
// reference of a campaign is immutable after creation.
type CampaignUpdate struct {
	AdvertiserID *int64
	Name         *string
	CampaignType *domain.CampaignType
	Status       *domain.Status
	DailyCap     *int64
	MonthlyCap   *int64
	TotalCap     *int64
	StartDate    *time.Time
	EndDate      *time.Time
	BidType      *domain.BidType
	Bid          *int64
	MinBid       *int64

	DailyFrequencyCap *int
	MinutesFrequency  *int
}

// CampaignUseCase mediates campaign CRUD behind the access rules.
type CampaignUseCase interface {
	List(ctx context.Context, p domain.Principal, f CampaignFilter) ([]domain.Campaign, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.Campaign, error)
	Create(ctx context.Context, p domain.Principal, c *domain.Campaign) error
	Update(ctx context.Context, p domain.Principal, id int64, upd CampaignUpdate) (*domain.Campaign, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}

// NativeAdUpdate is a partial update; nil fields are left untouched.
// CampaignID is accepted in payloads but always dropped: an ad cannot be
// repointed to a different campaign. Non-nil asset lists replace the stored
// lists wholesale.
type NativeAdUpdate struct {
	CampaignID  *int64
	Name        *string
	Title       *string
	URL         *string
	Status      *domain.Status
	DataAssets  *[]domain.NativeAdDataAsset
	ImageAssets *[]domain.NativeAdImageAsset
}

// NativeAdUseCase mediates native ad CRUD behind the access rules and the
// campaign/ad type validation table.
type NativeAdUseCase interface {
	List(ctx context.Context, p domain.Principal, f NativeAdFilter) ([]domain.NativeAd, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.NativeAd, error)
	Create(ctx context.Context, p domain.Principal, ad *domain.NativeAd) error
	Update(ctx context.Context, p domain.Principal, id int64, upd NativeAdUpdate) (*domain.NativeAd, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}
