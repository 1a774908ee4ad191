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

type campaignResponse struct {
	ID           int64      `json:"id"`
	AdvertiserID int64      `json:"advertiser_id"`
	Name         string     `json:"name"`
	CampaignType int        `json:"campaign_type"`
	Status       int        `json:"status"`
	DailyCap     int64      `json:"daily_cap"`
	MonthlyCap   int64      `json:"monthly_cap"`
	TotalCap     int64      `json:"total_cap"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	BidType      int        `json:"bid_type"`
	Bid          int64      `json:"bid"`
	MinBid       int64      `json:"min_bid"`

	DailyFrequencyCap int       `json:"daily_frequency_cap"`
	MinutesFrequency  int       `json:"minutes_frequency"`
	CreatedAt         time.Time `json:"created"`
	UpdatedAt         time.Time `json:"updated"`

	// Ads is only populated on detail responses, keyed by variant tag and
	// restricted to the variants the campaign's type allows.
	Ads map[string][]nativeAdResponse `json:"ads,omitempty"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:                c.ID,
		AdvertiserID:      c.AdvertiserID,
		Name:              c.Name,
		CampaignType:      int(c.CampaignType),
		Status:            int(c.Status),
		DailyCap:          c.DailyCap,
		MonthlyCap:        c.MonthlyCap,
		TotalCap:          c.TotalCap,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		BidType:           int(c.BidType),
		Bid:               c.Bid,
		MinBid:            c.MinBid,
		DailyFrequencyCap: c.DailyFrequencyCap,
		MinutesFrequency:  c.MinutesFrequency,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	var f port.CampaignFilter
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
	if v := q.Get("advertiser_id"); v != "" {
		f.AdvertiserID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := q.Get("campaign_type"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign_type"})
			return
		}
		f.CampaignType = domain.CampaignType(t)
	}

	items, err := h.campaigns.List(r.Context(), p, f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]campaignResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCampaignResponse(c))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	c, err := h.campaigns.Get(r.Context(), p, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := toCampaignResponse(*c)
	resp.Ads = map[string][]nativeAdResponse{}
	if c.CampaignType.AllowsAdType(domain.AdTypeNative) {
		ads, err := h.nativeAds.List(r.Context(), p, port.NativeAdFilter{CampaignID: c.ID})
		if err != nil {
			h.writeError(w, err)
			return
		}
		list := make([]nativeAdResponse, 0, len(ads))
		for _, ad := range ads {
			list = append(list, toNativeAdResponse(ad))
		}
		resp.Ads[domain.AdTypeNative] = list
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type campaignPayload struct {
	AdvertiserID *int64     `json:"advertiser_id"`
	Name         *string    `json:"name"`
	CampaignType *int       `json:"campaign_type"`
	Status       *int       `json:"status"`
	DailyCap     *int64     `json:"daily_cap"`
	MonthlyCap   *int64     `json:"monthly_cap"`
	TotalCap     *int64     `json:"total_cap"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	BidType      *int       `json:"bid_type"`
	Bid          *int64     `json:"bid"`
	MinBid       *int64     `json:"min_bid"`

	DailyFrequencyCap *int `json:"daily_frequency_cap"`
	MinutesFrequency  *int `json:"minutes_frequency"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	var req campaignPayload
	if !h.decodeCreateBody(w, r, p, access.ResourceCampaign, &req) {
		return
	}
	c := &domain.Campaign{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.AdvertiserID != nil {
		c.AdvertiserID = *req.AdvertiserID
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.CampaignType != nil {
		c.CampaignType = domain.CampaignType(*req.CampaignType)
	}
	if req.Status != nil {
		c.Status = domain.Status(*req.Status)
	}
	if req.DailyCap != nil {
		c.DailyCap = *req.DailyCap
	}
	if req.MonthlyCap != nil {
		c.MonthlyCap = *req.MonthlyCap
	}
	if req.TotalCap != nil {
		c.TotalCap = *req.TotalCap
	}
	if req.BidType != nil {
		c.BidType = domain.BidType(*req.BidType)
	}
	if req.Bid != nil {
		c.Bid = *req.Bid
	}
	if req.MinBid != nil {
		c.MinBid = *req.MinBid
	}
	if req.DailyFrequencyCap != nil {
		c.DailyFrequencyCap = *req.DailyFrequencyCap
	}
	if req.MinutesFrequency != nil {
		c.MinutesFrequency = *req.MinutesFrequency
	}

	if err := h.campaigns.Create(r.Context(), p, c); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(*c))
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req campaignPayload
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	upd := port.CampaignUpdate{
		AdvertiserID:      req.AdvertiserID,
		Name:              req.Name,
		DailyCap:          req.DailyCap,
		MonthlyCap:        req.MonthlyCap,
		TotalCap:          req.TotalCap,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Bid:               req.Bid,
		MinBid:            req.MinBid,
		DailyFrequencyCap: req.DailyFrequencyCap,
		MinutesFrequency:  req.MinutesFrequency,
	}
	if req.CampaignType != nil {
		t := domain.CampaignType(*req.CampaignType)
		upd.CampaignType = &t
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}
	if req.BidType != nil {
		b := domain.BidType(*req.BidType)
		upd.BidType = &b
	}

	c, err := h.campaigns.Update(r.Context(), p, id, upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(*c))
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalOr403(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err = h.campaigns.Delete(r.Context(), p, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
