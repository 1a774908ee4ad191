package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"cedar-ads/internal/auth"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// handleToken implements the client-credentials grant: a valid client id and
// secret are exchanged for a signed access token for the client's user.
func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form body"})
			return
		}
		req.GrantType = r.PostForm.Get("grant_type")
		req.ClientID = r.PostForm.Get("client_id")
		req.ClientSecret = r.PostForm.Get("client_secret")
	}

	if req.GrantType != "" && req.GrantType != "client_credentials" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported grant_type"})
		return
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing client_id or client_secret"})
		return
	}

	client, err := h.accounts.GetClient(r.Context(), req.ClientID)
	if err != nil || !auth.CheckSecret(client.SecretHash, req.ClientSecret) {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid client credentials"})
		return
	}

	p, err := h.accounts.GetPrincipal(r.Context(), client.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	token, expires, err := h.issuer.Issue(p.UserID, p.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expires).Seconds()),
	})
}

type createClientRequest struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type createClientResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Existing     bool   `json:"existing"`
}

// handleCreateClient provisions an API client for a user. The plaintext
// secret is only returned on creation; for an existing client only the id
// comes back, since secrets are stored hashed.
func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if req.UserID == 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing user_id"})
		return
	}
	if _, err := h.accounts.GetPrincipal(r.Context(), req.UserID); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user id not found"})
			return
		}
		h.writeError(w, err)
		return
	}

	if existing, err := h.accounts.GetClientByUser(r.Context(), req.UserID); err == nil {
		h.writeJSON(w, http.StatusOK, createClientResponse{ClientID: existing.ClientID, Existing: true})
		return
	} else if !errors.Is(err, port.ErrNotFound) {
		h.writeError(w, err)
		return
	}

	secret, err := auth.NewClientSecret()
	if err != nil {
		h.writeError(w, err)
		return
	}
	hash, err := auth.HashSecret(secret)
	if err != nil {
		h.writeError(w, err)
		return
	}
	name := req.Name
	if name == "" {
		name = "API Client"
	}
	client := &domain.APIClient{
		ClientID:   uuid.NewString(),
		UserID:     req.UserID,
		Name:       name,
		SecretHash: hash,
	}
	if err = h.accounts.CreateClient(r.Context(), client); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, createClientResponse{
		ClientID:     client.ClientID,
		ClientSecret: secret,
	})
}
