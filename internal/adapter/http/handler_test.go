package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedar-ads/internal/auth"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

func authedRequest(t *testing.T, deps *testDeps, method, target string, body string) *http.Request {
	t.Helper()
	token, _, err := deps.issuer.Issue(1, "admin@acme.example")
	require.NoError(t, err)
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestBulkMutationsForbiddenEvenForSuperuser(t *testing.T) {
	deps := newTestDeps()
	deps.accounts.getPrincipalFn = func(context.Context, int64) (*domain.Principal, error) {
		return &domain.Principal{UserID: 1, IsSuperuser: true}, nil
	}
	h := deps.handler()

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/v1/advertisers"},
		{http.MethodDelete, "/api/v1/advertisers"},
		{http.MethodPut, "/api/v1/campaigns"},
		{http.MethodDelete, "/api/v1/campaigns"},
		{http.MethodPut, "/api/v1/nativeads"},
		{http.MethodDelete, "/api/v1/nativeads"},
	}
	for _, tc := range targets {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, authedRequest(t, deps, tc.method, tc.path, `[{"name":"x"}]`))
		require.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)

		body := decodeDenied(t, rec)
		assert.Equal(t, unauthorizedMessage, body.Denied, "%s %s", tc.method, tc.path)
	}
}

func TestArrayBodyCreateIsBulkAndForbidden(t *testing.T) {
	deps := newTestDeps()
	deps.accounts.getPrincipalFn = func(context.Context, int64) (*domain.Principal, error) {
		return &domain.Principal{UserID: 1, IsSuperuser: true}, nil
	}
	h := deps.handler()

	for _, path := range []string{"/api/v1/advertisers", "/api/v1/campaigns", "/api/v1/nativeads"} {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, authedRequest(t, deps, http.MethodPost, path, `[{"name":"a"},{"name":"b"}]`))
		require.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, unauthorizedMessage, decodeDenied(t, rec).Denied, path)
	}
}

func TestSingleItemRoutesStayOpen(t *testing.T) {
	deps := newTestDeps()
	deps.accounts.getPrincipalFn = func(context.Context, int64) (*domain.Principal, error) {
		return &domain.Principal{UserID: 1, IsSuperuser: true}, nil
	}
	deps.campaigns.updateFn = func(_ context.Context, _ domain.Principal, id int64, _ port.CampaignUpdate) (*domain.Campaign, error) {
		return &domain.Campaign{ID: id, AdvertiserID: 42, Name: "renamed"}, nil
	}
	h := deps.handler()

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, authedRequest(t, deps, http.MethodPut, "/api/v1/campaigns/5", `{"name":"renamed"}`))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenEndpointRejectsBadSecret(t *testing.T) {
	deps := newTestDeps()
	hash, err := auth.HashSecret("right-secret")
	require.NoError(t, err)
	deps.accounts.getClientFn = func(_ context.Context, clientID string) (*domain.APIClient, error) {
		require.Equal(t, "client-1", clientID)
		return &domain.APIClient{ClientID: clientID, UserID: 7, SecretHash: hash}, nil
	}
	h := deps.handler()

	req := httptest.NewRequest(http.MethodPost, "/oauth/token",
		strings.NewReader(`{"client_id":"client-1","client_secret":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenEndpointIssuesUsableToken(t *testing.T) {
	deps := newTestDeps()
	hash, err := auth.HashSecret("right-secret")
	require.NoError(t, err)
	deps.accounts.getClientFn = func(_ context.Context, clientID string) (*domain.APIClient, error) {
		return &domain.APIClient{ClientID: clientID, UserID: 7, SecretHash: hash}, nil
	}
	deps.accounts.getPrincipalFn = func(context.Context, int64) (*domain.Principal, error) {
		return &domain.Principal{UserID: 7, Email: "rep@acme.example"}, nil
	}
	h := deps.handler()

	form := strings.NewReader("grant_type=client_credentials&client_id=client-1&client_secret=right-secret")
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Positive(t, body.ExpiresIn)

	claims, err := deps.issuer.Parse(body.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "rep@acme.example", claims.Email)
}

func TestCreateClientReturnsSecretOnceOnly(t *testing.T) {
	deps := newTestDeps()
	deps.accounts.getPrincipalFn = func(context.Context, int64) (*domain.Principal, error) {
		return &domain.Principal{UserID: 7}, nil
	}
	deps.accounts.getClientByUserFn = func(context.Context, int64) (*domain.APIClient, error) {
		return nil, port.ErrNotFound
	}
	var created *domain.APIClient
	deps.accounts.createClientFn = func(_ context.Context, c *domain.APIClient) error {
		created = c
		return nil
	}
	h := deps.handler()

	req := httptest.NewRequest(http.MethodPost, "/oauth/clients",
		strings.NewReader(`{"user_id":7,"name":"Reporting"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body createClientResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body.ClientSecret)
	require.NotNil(t, created)
	assert.NotEqual(t, body.ClientSecret, created.SecretHash, "only the hash is stored")

	// A second provisioning call returns the id but can no longer reveal
	// the secret.
	deps.accounts.getClientByUserFn = func(context.Context, int64) (*domain.APIClient, error) {
		return created, nil
	}
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/oauth/clients",
		strings.NewReader(`{"user_id":7}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var again createClientResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&again))
	assert.True(t, again.Existing)
	assert.Equal(t, created.ClientID, again.ClientID)
	assert.Empty(t, again.ClientSecret)
}
