package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// principalOr403 extracts the principal stored by the auth middleware. A
// missing principal means the middleware was bypassed; fail closed.
func (h *Handler) principalOr403(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := principalFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusForbidden, deniedResponse{Denied: deniedMessage})
	}
	return p, ok
}

// decodeCreateBody reads the request body for a create handler. An array
// body is a bulk create and is routed through the engine, which denies it
// for every role; the decoded object is returned otherwise.
func (h *Handler) decodeCreateBody(w http.ResponseWriter, r *http.Request, p domain.Principal, res access.Resource, dst any) bool {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	if trimmed := bytes.TrimLeft(raw, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		h.writeError(w, h.engine.Authorize(p, res, access.ActionBulkCreate, access.Target{}))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	return true
}

type advertiserResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

func toAdvertiserResponse(a domain.Advertiser) advertiserResponse {
	return advertiserResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Status:    int(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (h *Handler) handleListAdvertisers(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	var f port.AdvertiserFilter
	q := r.URL.Query()
	if v := q.Get("id"); v != "" {
		f.ID, _ = strconv.ParseInt(v, 10, 64)
	}
	f.Name = q.Get("name")
	if v := q.Get("status"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid status"})
			return
		}
		f.Status = domain.Status(s)
	}

	items, err := h.advertisers.List(r.Context(), p, f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]advertiserResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAdvertiserResponse(a))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetAdvertiser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	a, err := h.advertisers.Get(r.Context(), p, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdvertiserResponse(*a))
}

func (h *Handler) handleCreateAdvertiser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID int64  `json:"user_id"`
		Name   string `json:"name"`
		Status int    `json:"status"`
	}
	if !h.decodeCreateBody(w, r, p, access.ResourceAdvertiser, &req) {
		return
	}
	a := &domain.Advertiser{
		UserID: req.UserID,
		Name:   req.Name,
		Status: domain.Status(req.Status),
	}
	if err := h.advertisers.Create(r.Context(), p, a); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toAdvertiserResponse(*a))
}

func (h *Handler) handleUpdateAdvertiser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req struct {
		Name   *string `json:"name"`
		Status *int    `json:"status"`
	}
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	upd := port.AdvertiserUpdate{Name: req.Name}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}
	a, err := h.advertisers.Update(r.Context(), p, id, upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdvertiserResponse(*a))
}

func (h *Handler) handleDeleteAdvertiser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err = h.advertisers.Delete(r.Context(), p, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
