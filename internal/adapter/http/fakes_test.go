package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"cedar-ads/internal/auth"
	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

// Function-field fakes for the handler's collaborators. Tests set only the
// calls they expect; anything else panics.

type fakeAccounts struct {
	getPrincipalFn    func(ctx context.Context, userID int64) (*domain.Principal, error)
	getClientFn       func(ctx context.Context, clientID string) (*domain.APIClient, error)
	getClientByUserFn func(ctx context.Context, userID int64) (*domain.APIClient, error)
	createClientFn    func(ctx context.Context, c *domain.APIClient) error
}

func (f *fakeAccounts) GetPrincipal(ctx context.Context, userID int64) (*domain.Principal, error) {
	return f.getPrincipalFn(ctx, userID)
}
func (f *fakeAccounts) GetClient(ctx context.Context, clientID string) (*domain.APIClient, error) {
	return f.getClientFn(ctx, clientID)
}
func (f *fakeAccounts) GetClientByUser(ctx context.Context, userID int64) (*domain.APIClient, error) {
	return f.getClientByUserFn(ctx, userID)
}
func (f *fakeAccounts) CreateClient(ctx context.Context, c *domain.APIClient) error {
	return f.createClientFn(ctx, c)
}

// recordingSink collects audit entries and can simulate a failing store.
type recordingSink struct {
	entries []domain.AuthLog
	err     error
}

func (s *recordingSink) Record(_ context.Context, entry domain.AuthLog) error {
	s.entries = append(s.entries, entry)
	return s.err
}

type fakeCampaignUseCase struct {
	listFn   func(ctx context.Context, p domain.Principal, f port.CampaignFilter) ([]domain.Campaign, error)
	getFn    func(ctx context.Context, p domain.Principal, id int64) (*domain.Campaign, error)
	createFn func(ctx context.Context, p domain.Principal, c *domain.Campaign) error
	updateFn func(ctx context.Context, p domain.Principal, id int64, upd port.CampaignUpdate) (*domain.Campaign, error)
	deleteFn func(ctx context.Context, p domain.Principal, id int64) error
}

func (f *fakeCampaignUseCase) List(ctx context.Context, p domain.Principal, fl port.CampaignFilter) ([]domain.Campaign, error) {
	return f.listFn(ctx, p, fl)
}
func (f *fakeCampaignUseCase) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Campaign, error) {
	return f.getFn(ctx, p, id)
}
func (f *fakeCampaignUseCase) Create(ctx context.Context, p domain.Principal, c *domain.Campaign) error {
	return f.createFn(ctx, p, c)
}
func (f *fakeCampaignUseCase) Update(ctx context.Context, p domain.Principal, id int64, upd port.CampaignUpdate) (*domain.Campaign, error) {
	return f.updateFn(ctx, p, id, upd)
}
func (f *fakeCampaignUseCase) Delete(ctx context.Context, p domain.Principal, id int64) error {
	return f.deleteFn(ctx, p, id)
}

type fakeAdvertiserUseCase struct {
	listFn   func(ctx context.Context, p domain.Principal, f port.AdvertiserFilter) ([]domain.Advertiser, error)
	getFn    func(ctx context.Context, p domain.Principal, id int64) (*domain.Advertiser, error)
	createFn func(ctx context.Context, p domain.Principal, a *domain.Advertiser) error
	updateFn func(ctx context.Context, p domain.Principal, id int64, upd port.AdvertiserUpdate) (*domain.Advertiser, error)
	deleteFn func(ctx context.Context, p domain.Principal, id int64) error
}

func (f *fakeAdvertiserUseCase) List(ctx context.Context, p domain.Principal, fl port.AdvertiserFilter) ([]domain.Advertiser, error) {
	return f.listFn(ctx, p, fl)
}
func (f *fakeAdvertiserUseCase) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Advertiser, error) {
	return f.getFn(ctx, p, id)
}
func (f *fakeAdvertiserUseCase) Create(ctx context.Context, p domain.Principal, a *domain.Advertiser) error {
	return f.createFn(ctx, p, a)
}
func (f *fakeAdvertiserUseCase) Update(ctx context.Context, p domain.Principal, id int64, upd port.AdvertiserUpdate) (*domain.Advertiser, error) {
	return f.updateFn(ctx, p, id, upd)
}
func (f *fakeAdvertiserUseCase) Delete(ctx context.Context, p domain.Principal, id int64) error {
	return f.deleteFn(ctx, p, id)
}

type fakeNativeAdUseCase struct {
	listFn   func(ctx context.Context, p domain.Principal, f port.NativeAdFilter) ([]domain.NativeAd, error)
	getFn    func(ctx context.Context, p domain.Principal, id int64) (*domain.NativeAd, error)
	createFn func(ctx context.Context, p domain.Principal, ad *domain.NativeAd) error
	updateFn func(ctx context.Context, p domain.Principal, id int64, upd port.NativeAdUpdate) (*domain.NativeAd, error)
	deleteFn func(ctx context.Context, p domain.Principal, id int64) error
}

func (f *fakeNativeAdUseCase) List(ctx context.Context, p domain.Principal, fl port.NativeAdFilter) ([]domain.NativeAd, error) {
	return f.listFn(ctx, p, fl)
}
func (f *fakeNativeAdUseCase) Get(ctx context.Context, p domain.Principal, id int64) (*domain.NativeAd, error) {
	return f.getFn(ctx, p, id)
}
func (f *fakeNativeAdUseCase) Create(ctx context.Context, p domain.Principal, ad *domain.NativeAd) error {
	return f.createFn(ctx, p, ad)
}
func (f *fakeNativeAdUseCase) Update(ctx context.Context, p domain.Principal, id int64, upd port.NativeAdUpdate) (*domain.NativeAd, error) {
	return f.updateFn(ctx, p, id, upd)
}
func (f *fakeNativeAdUseCase) Delete(ctx context.Context, p domain.Principal, id int64) error {
	return f.deleteFn(ctx, p, id)
}

// testDeps bundles everything a handler test can tweak before building.
type testDeps struct {
	advertisers *fakeAdvertiserUseCase
	campaigns   *fakeCampaignUseCase
	nativeAds   *fakeNativeAdUseCase
	accounts    *fakeAccounts
	sink        *recordingSink
	issuer      *auth.TokenIssuer
}

func newTestDeps() *testDeps {
	return &testDeps{
		advertisers: &fakeAdvertiserUseCase{},
		campaigns:   &fakeCampaignUseCase{},
		nativeAds:   &fakeNativeAdUseCase{},
		accounts:    &fakeAccounts{},
		sink:        &recordingSink{},
		issuer:      auth.NewTokenIssuer("test-secret", time.Hour),
	}
}

func (d *testDeps) handler() *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(d.advertisers, d.campaigns, d.nativeAds, d.accounts, d.sink, access.NewEngine(), d.issuer, logger)
}
