package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"cedar-ads/internal/core/domain"
)

type contextKey int

const principalKey contextKey = iota

// principalFrom returns the principal the auth middleware stored on the
// request context.
func principalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	if !ok {
		return domain.Principal{}, false
	}
	return *p, true
}

// clientIP prefers the X-Forwarded-For header over the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	addr := r.RemoteAddr
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[:i]
	}
	return addr
}

// requireAuth gates every API route behind a bearer token. Each attempt,
// successful or not, appends exactly one auth log record. The audit write is
// best-effort: a sink failure is logged and never surfaced to the caller.
// Unauthenticated requests receive the generic forbidden body, with the
// token error attached as detail when there is one.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := domain.AuthLog{
			IPAddress:    clientIP(r),
			RequestedURL: r.URL.RequestURI(),
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
		if tokenStr == "" {
			h.audit(r.Context(), entry)
			h.writeJSON(w, http.StatusForbidden, deniedResponse{Denied: deniedMessage})
			return
		}

		claims, err := h.issuer.Parse(tokenStr)
		if err != nil {
			entry.Message = err.Error()
			h.audit(r.Context(), entry)
			h.writeJSON(w, http.StatusForbidden, deniedResponse{Denied: deniedMessage, Detail: err.Error()})
			return
		}

		p, err := h.accounts.GetPrincipal(r.Context(), claims.UserID)
		if err != nil {
			entry.Message = "unknown user"
			h.audit(r.Context(), entry)
			h.writeJSON(w, http.StatusForbidden, deniedResponse{Denied: deniedMessage})
			return
		}

		entry.UserID = &p.UserID
		entry.Username = p.Email
		entry.Authenticated = true
		h.audit(r.Context(), entry)

		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// audit appends an auth log record, swallowing sink failures.
func (h *Handler) audit(ctx context.Context, entry domain.AuthLog) {
	if err := h.auditSink.Record(ctx, entry); err != nil {
		h.logger.Error("auth log write failed", slog.Any("error", err))
	}
}
