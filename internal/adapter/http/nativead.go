package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

type dataAssetPayload struct {
	AssetType int    `json:"asset_type"`
	Value     string `json:"value"`
}

type imageAssetPayload struct {
	AssetType      int    `json:"asset_type"`
	Filename       string `json:"filename"`
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
}

type nativeAdResponse struct {
	ID          int64               `json:"id"`
	CampaignID  int64               `json:"campaign_id"`
	Name        string              `json:"name"`
	Title       string              `json:"title"`
	URL         string              `json:"url"`
	Status      int                 `json:"status"`
	DataAssets  []dataAssetPayload  `json:"dataassets"`
	ImageAssets []imageAssetPayload `json:"imageassets"`
	CreatedAt   time.Time           `json:"created"`
	UpdatedAt   time.Time           `json:"updated"`
}

func toNativeAdResponse(ad domain.NativeAd) nativeAdResponse {
	resp := nativeAdResponse{
		ID:          ad.ID,
		CampaignID:  ad.CampaignID,
		Name:        ad.Name,
		Title:       ad.Title,
		URL:         ad.URL,
		Status:      int(ad.Status),
		DataAssets:  make([]dataAssetPayload, 0, len(ad.DataAssets)),
		ImageAssets: make([]imageAssetPayload, 0, len(ad.ImageAssets)),
		CreatedAt:   ad.CreatedAt,
		UpdatedAt:   ad.UpdatedAt,
	}
	for _, a := range ad.DataAssets {
		resp.DataAssets = append(resp.DataAssets, dataAssetPayload{AssetType: a.AssetType, Value: a.Value})
	}
	for _, a := range ad.ImageAssets {
		resp.ImageAssets = append(resp.ImageAssets, imageAssetPayload{
			AssetType:      a.AssetType,
			Filename:       a.Filename,
			OriginalWidth:  a.OriginalWidth,
			OriginalHeight: a.OriginalHeight,
		})
	}
	return resp
}

func toDataAssets(in []dataAssetPayload) []domain.NativeAdDataAsset {
	out := make([]domain.NativeAdDataAsset, 0, len(in))
	for _, a := range in {
		out = append(out, domain.NativeAdDataAsset{AssetType: a.AssetType, Value: a.Value})
	}
	return out
}

func toImageAssets(in []imageAssetPayload) []domain.NativeAdImageAsset {
	out := make([]domain.NativeAdImageAsset, 0, len(in))
	for _, a := range in {
		out = append(out, domain.NativeAdImageAsset{
			AssetType:      a.AssetType,
			Filename:       a.Filename,
			OriginalWidth:  a.OriginalWidth,
			OriginalHeight: a.OriginalHeight,
		})
	}
	return out
}

func (h *Handler) handleListNativeAds(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	var f port.NativeAdFilter
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
	if v := q.Get("campaign_id"); v != "" {
		f.CampaignID, _ = strconv.ParseInt(v, 10, 64)
	}

	items, err := h.nativeAds.List(r.Context(), p, f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]nativeAdResponse, 0, len(items))
	for _, ad := range items {
		out = append(out, toNativeAdResponse(ad))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetNativeAd(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	ad, err := h.nativeAds.Get(r.Context(), p, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toNativeAdResponse(*ad))
}

type nativeAdPayload struct {
	CampaignID  *int64               `json:"campaign_id"`
	Name        *string              `json:"name"`
	Title       *string              `json:"title"`
	URL         *string              `json:"url"`
	Status      *int                 `json:"status"`
	DataAssets  *[]dataAssetPayload  `json:"dataassets"`
	ImageAssets *[]imageAssetPayload `json:"imageassets"`
}

func (h *Handler) handleCreateNativeAd(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	var req nativeAdPayload
	if !h.decodeCreateBody(w, r, p, access.ResourceNativeAd, &req) {
		return
	}
	ad := &domain.NativeAd{}
	if req.CampaignID != nil {
		ad.CampaignID = *req.CampaignID
	}
	if req.Name != nil {
		ad.Name = *req.Name
	}
	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.URL != nil {
		ad.URL = *req.URL
	}
	if req.Status != nil {
		ad.Status = domain.Status(*req.Status)
	}
	if req.DataAssets != nil {
		ad.DataAssets = toDataAssets(*req.DataAssets)
	}
	if req.ImageAssets != nil {
		ad.ImageAssets = toImageAssets(*req.ImageAssets)
	}

	if err := h.nativeAds.Create(r.Context(), p, ad); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toNativeAdResponse(*ad))
}

func (h *Handler) handleUpdateNativeAd(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req nativeAdPayload
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	upd := port.NativeAdUpdate{
		CampaignID: req.CampaignID,
		Name:       req.Name,
		Title:      req.Title,
		URL:        req.URL,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}
	if req.DataAssets != nil {
		assets := toDataAssets(*req.DataAssets)
		upd.DataAssets = &assets
	}
	if req.ImageAssets != nil {
		assets := toImageAssets(*req.ImageAssets)
		upd.ImageAssets = &assets
	}

	ad, err := h.nativeAds.Update(r.Context(), p, id, upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toNativeAdResponse(*ad))
}

func (h *Handler) handleDeleteNativeAd(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err = h.nativeAds.Delete(r.Context(), p, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
