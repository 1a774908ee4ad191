package usecase

import (
	"context"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// NativeAdUseCase mediates native ad CRUD. An ad's ownership context is its
// campaign's advertiser, and its variant must be accepted by the campaign's
// type on every persist. The campaign reference is immutable once set.
type NativeAdUseCase struct {
	ads       port.NativeAdRepository
	campaigns port.CampaignRepository
	engine    *access.Engine
}

// NewNativeAdUseCase wires the repositories and the access engine.
func NewNativeAdUseCase(ads port.NativeAdRepository, campaigns port.CampaignRepository, engine *access.Engine) *NativeAdUseCase {
	return &NativeAdUseCase{ads: ads, campaigns: campaigns, engine: engine}
}

func (u *NativeAdUseCase) List(ctx context.Context, p domain.Principal, f port.NativeAdFilter) ([]domain.NativeAd, error) {
	if err := u.engine.Authorize(p, access.ResourceNativeAd, access.ActionList, access.Target{}); err != nil {
		return nil, err
	}
	items, err := u.ads.List(ctx, f)
	if err != nil {
		return nil, err
	}

	// Resolve each ad's advertiser through its campaign once, then let the
	// row filter narrow the result.
	owners := make(map[int64]int64)
	for _, ad := range items {
		if _, ok := owners[ad.CampaignID]; ok {
			continue
		}
		c, err := u.campaigns.Get(ctx, ad.CampaignID)
		if err != nil {
			return nil, err
		}
		owners[ad.CampaignID] = c.AdvertiserID
	}
	return access.FilterOwned(items, func(ad domain.NativeAd) int64 { return owners[ad.CampaignID] }, p)
}

func (u *NativeAdUseCase) Get(ctx context.Context, p domain.Principal, id int64) (*domain.NativeAd, error) {
	ad, err := u.ads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := u.campaigns.Get(ctx, ad.CampaignID)
	if err != nil {
		return nil, err
	}
	if err = u.engine.Authorize(p, access.ResourceNativeAd, access.ActionGet, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return nil, err
	}
	return ad, nil
}

func (u *NativeAdUseCase) Create(ctx context.Context, p domain.Principal, ad *domain.NativeAd) error {
	if ad.CampaignID == 0 {
		return port.Validationf("missing campaign_id")
	}
	c, err := u.campaigns.Get(ctx, ad.CampaignID)
	if err != nil {
		return notFoundAsValidation(err, "invalid campaign_id")
	}
	if err = u.engine.Authorize(p, access.ResourceNativeAd, access.ActionCreate, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return err
	}
	if ad.Name == "" {
		return port.Validationf("missing name")
	}
	if err = c.CampaignType.ValidateAdType(ad.AdType()); err != nil {
		return port.Validationf("%s", err)
	}
	if err = validateAssets(ad.DataAssets, ad.ImageAssets); err != nil {
		return err
	}
	if ad.Status == 0 {
		ad.Status = domain.StatusPending
	}
	return u.ads.Create(ctx, ad)
}

func (u *NativeAdUseCase) Update(ctx context.Context, p domain.Principal, id int64, upd port.NativeAdUpdate) (*domain.NativeAd, error) {
	ad, err := u.ads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := u.campaigns.Get(ctx, ad.CampaignID)
	if err != nil {
		return nil, err
	}
	if err = u.engine.Authorize(p, access.ResourceNativeAd, access.ActionUpdate, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return nil, err
	}

	// upd.CampaignID is deliberately ignored: an ad cannot be repointed to
	// a different campaign through an update.
	if upd.Name != nil {
		ad.Name = *upd.Name
	}
	if upd.Title != nil {
		ad.Title = *upd.Title
	}
	if upd.URL != nil {
		ad.URL = *upd.URL
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, port.Validationf("unknown status %d", *upd.Status)
		}
		ad.Status = *upd.Status
	}
	if upd.DataAssets != nil {
		ad.DataAssets = *upd.DataAssets
	}
	if upd.ImageAssets != nil {
		ad.ImageAssets = *upd.ImageAssets
	}

	// The variant check runs on every persist, not only at creation.
	if err = c.CampaignType.ValidateAdType(ad.AdType()); err != nil {
		return nil, port.Validationf("%s", err)
	}
	if err = validateAssets(ad.DataAssets, ad.ImageAssets); err != nil {
		return nil, err
	}

	if err = u.ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Delete marks the ad deleted; its assets stay in place.
func (u *NativeAdUseCase) Delete(ctx context.Context, p domain.Principal, id int64) error {
	ad, err := u.ads.Get(ctx, id)
	if err != nil {
		return err
	}
	c, err := u.campaigns.Get(ctx, ad.CampaignID)
	if err != nil {
		return err
	}
	if err = u.engine.Authorize(p, access.ResourceNativeAd, access.ActionDelete, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return err
	}
	ad.Status = domain.StatusDeleted
	return u.ads.Update(ctx, ad)
}

// validateAssets checks every asset before any is written, so a rejected
// payload leaves no partial effects.
func validateAssets(data []domain.NativeAdDataAsset, images []domain.NativeAdImageAsset) error {
	for _, a := range data {
		if err := a.Validate(); err != nil {
			return port.Validationf("%s", err)
		}
	}
	for _, a := range images {
		if err := a.Validate(); err != nil {
			return port.Validationf("%s", err)
		}
	}
	return nil
}

var _ port.NativeAdUseCase = (*NativeAdUseCase)(nil)
