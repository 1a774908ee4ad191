package usecase

import (
	"context"
	"errors"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// AdvertiserUseCase mediates advertiser CRUD: every call is authorized
// against the access engine before the repository is touched, and list
// results are narrowed by the row filter.
type AdvertiserUseCase struct {
	advertisers port.AdvertiserRepository
	engine      *access.Engine
}

// NewAdvertiserUseCase wires the repository and the access engine.
func NewAdvertiserUseCase(advertisers port.AdvertiserRepository, engine *access.Engine) *AdvertiserUseCase {
	return &AdvertiserUseCase{advertisers: advertisers, engine: engine}
}

func (u *AdvertiserUseCase) List(ctx context.Context, p domain.Principal, f port.AdvertiserFilter) ([]domain.Advertiser, error) {
	if err := u.engine.Authorize(p, access.ResourceAdvertiser, access.ActionList, access.Target{}); err != nil {
		return nil, err
	}
	items, err := u.advertisers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return access.FilterOwned(items, func(a domain.Advertiser) int64 { return a.ID }, p)
}

func (u *AdvertiserUseCase) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Advertiser, error) {
	a, err := u.advertisers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.engine.Authorize(p, access.ResourceAdvertiser, access.ActionGet, access.Target{AdvertiserID: a.ID}); err != nil {
		return nil, err
	}
	return a, nil
}

func (u *AdvertiserUseCase) Create(ctx context.Context, p domain.Principal, a *domain.Advertiser) error {
	if err := u.engine.Authorize(p, access.ResourceAdvertiser, access.ActionCreate, access.Target{}); err != nil {
		return err
	}
	if a.Name == "" {
		return port.Validationf("missing name")
	}
	if a.Status == 0 {
		a.Status = domain.StatusPending
	}
	if !a.Status.Valid() {
		return port.Validationf("unknown status %d", a.Status)
	}
	return u.advertisers.Create(ctx, a)
}

func (u *AdvertiserUseCase) Update(ctx context.Context, p domain.Principal, id int64, upd port.AdvertiserUpdate) (*domain.Advertiser, error) {
	a, err := u.advertisers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.engine.Authorize(p, access.ResourceAdvertiser, access.ActionUpdate, access.Target{AdvertiserID: a.ID}); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, port.Validationf("unknown status %d", *upd.Status)
		}
		a.Status = *upd.Status
	}
	if err = u.advertisers.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete marks the advertiser deleted. Rows are never removed so that the
// campaign tree below them stays intact.
func (u *AdvertiserUseCase) Delete(ctx context.Context, p domain.Principal, id int64) error {
	a, err := u.advertisers.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = u.engine.Authorize(p, access.ResourceAdvertiser, access.ActionDelete, access.Target{AdvertiserID: a.ID}); err != nil {
		return err
	}
	a.Status = domain.StatusDeleted
	return u.advertisers.Update(ctx, a)
}

var _ port.AdvertiserUseCase = (*AdvertiserUseCase)(nil)

// notFoundAsValidation converts a missing parent row into a bad-request,
// keeping ErrNotFound for the resource actually addressed by the call.
func notFoundAsValidation(err error, msg string) error {
	if errors.Is(err, port.ErrNotFound) {
		return port.Validationf("%s", msg)
	}
	return err
}
