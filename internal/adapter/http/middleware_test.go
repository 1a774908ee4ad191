package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

func decodeDenied(t *testing.T, rec *httptest.ResponseRecorder) deniedResponse {
	t.Helper()
	var body deniedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestMissingTokenIsForbiddenAndAudited(t *testing.T) {
	deps := newTestDeps()
	h := deps.handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns?status=2", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeDenied(t, rec)
	assert.Equal(t, deniedMessage, body.Denied)
	assert.Empty(t, body.Detail)

	require.Len(t, deps.sink.entries, 1, "one attempt, one auth log record")
	entry := deps.sink.entries[0]
	assert.False(t, entry.Authenticated)
	assert.Nil(t, entry.UserID)
	assert.Equal(t, "203.0.113.9", entry.IPAddress)
	assert.Equal(t, "/api/v1/campaigns?status=2", entry.RequestedURL)
}

func TestGarbageTokenCarriesDetail(t *testing.T) {
	deps := newTestDeps()
	h := deps.handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeDenied(t, rec)
	assert.Equal(t, deniedMessage, body.Denied)
	assert.NotEmpty(t, body.Detail)

	require.Len(t, deps.sink.entries, 1)
	assert.False(t, deps.sink.entries[0].Authenticated)
	assert.NotEmpty(t, deps.sink.entries[0].Message)
}

func TestAuditSinkFailureStillForbids(t *testing.T) {
	deps := newTestDeps()
	deps.sink.err = errors.New("disk full")
	h := deps.handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Len(t, deps.sink.entries, 1, "the attempt is still handed to the sink")
}

func TestValidTokenAuthenticatesAndAudits(t *testing.T) {
	deps := newTestDeps()
	deps.accounts.getPrincipalFn = func(_ context.Context, userID int64) (*domain.Principal, error) {
		require.EqualValues(t, 7, userID)
		return &domain.Principal{UserID: 7, Email: "rep@acme.example", IsStaff: true}, nil
	}
	var seen domain.Principal
	deps.campaigns.listFn = func(_ context.Context, p domain.Principal, _ port.CampaignFilter) ([]domain.Campaign, error) {
		seen = p
		return nil, nil
	}
	h := deps.handler()

	token, _, err := deps.issuer.Issue(7, "rep@acme.example")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, seen.UserID, "the resolved principal reaches the usecase")

	require.Len(t, deps.sink.entries, 1)
	entry := deps.sink.entries[0]
	assert.True(t, entry.Authenticated)
	require.NotNil(t, entry.UserID)
	assert.EqualValues(t, 7, *entry.UserID)
	assert.Equal(t, "rep@acme.example", entry.Username)
}

func TestUnknownUserBehindValidTokenForbidden(t *testing.T) {
	deps := newTestDeps()
	deps.accounts.getPrincipalFn = func(context.Context, int64) (*domain.Principal, error) {
		return nil, port.ErrNotFound
	}
	h := deps.handler()

	token, _, err := deps.issuer.Issue(404, "gone@acme.example")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Len(t, deps.sink.entries, 1)
	assert.Equal(t, "unknown user", deps.sink.entries[0].Message)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	assert.Equal(t, "198.51.100.4", clientIP(req))
}
