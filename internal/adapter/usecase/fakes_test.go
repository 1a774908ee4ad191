package usecase

import (
	"context"

	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// Function-field fakes for the repository ports. Tests set only the calls
// they expect; anything else panics.

type fakeAdvertiserRepo struct {
	listFn   func(ctx context.Context, f port.AdvertiserFilter) ([]domain.Advertiser, error)
	getFn    func(ctx context.Context, id int64) (*domain.Advertiser, error)
	createFn func(ctx context.Context, a *domain.Advertiser) error
	updateFn func(ctx context.Context, a *domain.Advertiser) error
}

func (f *fakeAdvertiserRepo) List(ctx context.Context, fl port.AdvertiserFilter) ([]domain.Advertiser, error) {
	return f.listFn(ctx, fl)
}
func (f *fakeAdvertiserRepo) Get(ctx context.Context, id int64) (*domain.Advertiser, error) {
	return f.getFn(ctx, id)
}
func (f *fakeAdvertiserRepo) Create(ctx context.Context, a *domain.Advertiser) error {
	return f.createFn(ctx, a)
}
func (f *fakeAdvertiserRepo) Update(ctx context.Context, a *domain.Advertiser) error {
	return f.updateFn(ctx, a)
}

type fakeCampaignRepo struct {
	listFn   func(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error)
	getFn    func(ctx context.Context, id int64) (*domain.Campaign, error)
	createFn func(ctx context.Context, c *domain.Campaign) error
	updateFn func(ctx context.Context, c *domain.Campaign) error
}

func (f *fakeCampaignRepo) List(ctx context.Context, fl port.CampaignFilter) ([]domain.Campaign, error) {
	return f.listFn(ctx, fl)
}
func (f *fakeCampaignRepo) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	return f.getFn(ctx, id)
}
func (f *fakeCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	return f.createFn(ctx, c)
}
func (f *fakeCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	return f.updateFn(ctx, c)
}

type fakeNativeAdRepo struct {
	listFn   func(ctx context.Context, f port.NativeAdFilter) ([]domain.NativeAd, error)
	getFn    func(ctx context.Context, id int64) (*domain.NativeAd, error)
	createFn func(ctx context.Context, ad *domain.NativeAd) error
	updateFn func(ctx context.Context, ad *domain.NativeAd) error
}

func (f *fakeNativeAdRepo) List(ctx context.Context, fl port.NativeAdFilter) ([]domain.NativeAd, error) {
	return f.listFn(ctx, fl)
}
func (f *fakeNativeAdRepo) Get(ctx context.Context, id int64) (*domain.NativeAd, error) {
	return f.getFn(ctx, id)
}
func (f *fakeNativeAdRepo) Create(ctx context.Context, ad *domain.NativeAd) error {
	return f.createFn(ctx, ad)
}
func (f *fakeNativeAdRepo) Update(ctx context.Context, ad *domain.NativeAd) error {
	return f.updateFn(ctx, ad)
}
