package usecase

import (
	"context"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// CampaignUseCase mediates campaign CRUD. Ownership context is the
// campaign's advertiser; the advertiser reference is immutable once set.
type CampaignUseCase struct {
	campaigns   port.CampaignRepository
	advertisers port.AdvertiserRepository
	engine      *access.Engine
}

// NewCampaignUseCase wires the repositories and the access engine.
func NewCampaignUseCase(campaigns port.CampaignRepository, advertisers port.AdvertiserRepository, engine *access.Engine) *CampaignUseCase {
	return &CampaignUseCase{campaigns: campaigns, advertisers: advertisers, engine: engine}
}

func (u *CampaignUseCase) List(ctx context.Context, p domain.Principal, f port.CampaignFilter) ([]domain.Campaign, error) {
	if err := u.engine.Authorize(p, access.ResourceCampaign, access.ActionList, access.Target{}); err != nil {
		return nil, err
	}
	items, err := u.campaigns.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return access.FilterOwned(items, func(c domain.Campaign) int64 { return c.AdvertiserID }, p)
}

func (u *CampaignUseCase) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Campaign, error) {
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.engine.Authorize(p, access.ResourceCampaign, access.ActionGet, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *CampaignUseCase) Create(ctx context.Context, p domain.Principal, c *domain.Campaign) error {
	if c.AdvertiserID == 0 {
		return port.Validationf("missing advertiser_id")
	}
	if _, err := u.advertisers.Get(ctx, c.AdvertiserID); err != nil {
		return notFoundAsValidation(err, "invalid advertiser_id")
	}
	if err := u.engine.Authorize(p, access.ResourceCampaign, access.ActionCreate, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return err
	}
	if c.Name == "" {
		return port.Validationf("missing name")
	}
	if !c.CampaignType.Valid() {
		return port.Validationf("unknown campaign type %d", c.CampaignType)
	}
	if !c.BidType.Valid() {
		return port.Validationf("unknown bid type %d", c.BidType)
	}
	if c.Status == 0 {
		c.Status = domain.StatusPending
	}
	if c.MinutesFrequency == 0 {
		c.MinutesFrequency = 1440
	}
	return u.campaigns.Create(ctx, c)
}

func (u *CampaignUseCase) Update(ctx context.Context, p domain.Principal, id int64, upd port.CampaignUpdate) (*domain.Campaign, error) {
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.engine.Authorize(p, access.ResourceCampaign, access.ActionUpdate, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return nil, err
	}

	// upd.AdvertiserID is deliberately ignored: a campaign cannot be
	// repointed to a different advertiser through an update.
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.CampaignType != nil {
		if !upd.CampaignType.Valid() {
			return nil, port.Validationf("unknown campaign type %d", *upd.CampaignType)
		}
		c.CampaignType = *upd.CampaignType
	}
	if upd.Status != nil {
		if err = c.SetStatus(*upd.Status); err != nil {
			return nil, port.Validationf("%s", err)
		}
	}
	if upd.DailyCap != nil {
		c.DailyCap = *upd.DailyCap
	}
	if upd.MonthlyCap != nil {
		c.MonthlyCap = *upd.MonthlyCap
	}
	if upd.TotalCap != nil {
		c.TotalCap = *upd.TotalCap
	}
	if upd.StartDate != nil {
		c.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		c.EndDate = upd.EndDate
	}
	if upd.BidType != nil {
		if !upd.BidType.Valid() {
			return nil, port.Validationf("unknown bid type %d", *upd.BidType)
		}
		c.BidType = *upd.BidType
	}
	if upd.Bid != nil {
		c.Bid = *upd.Bid
	}
	if upd.MinBid != nil {
		c.MinBid = *upd.MinBid
	}
	if upd.DailyFrequencyCap != nil {
		c.DailyFrequencyCap = *upd.DailyFrequencyCap
	}
	if upd.MinutesFrequency != nil {
		c.MinutesFrequency = *upd.MinutesFrequency
	}

	if err = u.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete marks the campaign deleted through the status setter.
func (u *CampaignUseCase) Delete(ctx context.Context, p domain.Principal, id int64) error {
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = u.engine.Authorize(p, access.ResourceCampaign, access.ActionDelete, access.Target{AdvertiserID: c.AdvertiserID}); err != nil {
		return err
	}
	if err = c.SetStatus(domain.StatusDeleted); err != nil {
		return err
	}
	return u.campaigns.Update(ctx, c)
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)
