package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cedar-ads/internal/auth"
	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/port"
)

// Handler is the inbound HTTP adapter. It wires the chi router, the auth
// middleware and the per-resource handlers to the mediation usecases. Bulk
// mutations on collection paths are routed straight into the access engine,
// which denies them for every role.
type Handler struct {
	advertisers port.AdvertiserUseCase
	campaigns   port.CampaignUseCase
	nativeAds   port.NativeAdUseCase
	accounts    port.AccountRepository
	auditSink   port.AuditSink
	engine      *access.Engine
	issuer      *auth.TokenIssuer
	logger      *slog.Logger
	router      chi.Router
}

// NewHandler creates a handler with all routes configured. Token and client
// provisioning endpoints are exempt from the auth middleware; everything
// under /api is gated by it.
func NewHandler(
	advertisers port.AdvertiserUseCase,
	campaigns port.CampaignUseCase,
	nativeAds port.NativeAdUseCase,
	accounts port.AccountRepository,
	auditSink port.AuditSink,
	engine *access.Engine,
	issuer *auth.TokenIssuer,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		advertisers: advertisers,
		campaigns:   campaigns,
		nativeAds:   nativeAds,
		accounts:    accounts,
		auditSink:   auditSink,
		engine:      engine,
		issuer:      issuer,
		logger:      logger,
	}
	r := chi.NewRouter()

	r.Post("/oauth/token", h.handleToken)
	// TODO: gate client provisioning behind staff once the admin login
	// surface exists.
	r.Post("/oauth/clients", h.handleCreateClient)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Route("/advertisers", func(r chi.Router) {
			r.Get("/", h.handleListAdvertisers)
			r.Post("/", h.handleCreateAdvertiser)
			r.Put("/", h.bulkDeny(access.ResourceAdvertiser, access.ActionBulkUpdate))
			r.Delete("/", h.bulkDeny(access.ResourceAdvertiser, access.ActionBulkDelete))
			r.Get("/{id}", h.handleGetAdvertiser)
			r.Put("/{id}", h.handleUpdateAdvertiser)
			r.Delete("/{id}", h.handleDeleteAdvertiser)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Post("/", h.handleCreateCampaign)
			r.Put("/", h.bulkDeny(access.ResourceCampaign, access.ActionBulkUpdate))
			r.Delete("/", h.bulkDeny(access.ResourceCampaign, access.ActionBulkDelete))
			r.Get("/{id}", h.handleGetCampaign)
			r.Put("/{id}", h.handleUpdateCampaign)
			r.Delete("/{id}", h.handleDeleteCampaign)
		})

		r.Route("/nativeads", func(r chi.Router) {
			r.Get("/", h.handleListNativeAds)
			r.Post("/", h.handleCreateNativeAd)
			r.Put("/", h.bulkDeny(access.ResourceNativeAd, access.ActionBulkUpdate))
			r.Delete("/", h.bulkDeny(access.ResourceNativeAd, access.ActionBulkDelete))
			r.Get("/{id}", h.handleGetNativeAd)
			r.Put("/{id}", h.handleUpdateNativeAd)
			r.Delete("/{id}", h.handleDeleteNativeAd)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// bulkDeny routes a collection-level mutation through the engine so the
// unconditional bulk denial applies, superusers included.
func (h *Handler) bulkDeny(res access.Resource, action access.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r.Context())
		if !ok {
			h.writeJSON(w, http.StatusForbidden, deniedResponse{Denied: deniedMessage})
			return
		}
		err := h.engine.Authorize(p, res, action, access.Target{})
		h.writeError(w, err)
	}
}
