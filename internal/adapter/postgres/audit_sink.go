package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cedar-ads/internal/core/domain"
)

// AuditSink implements port.AuditSink as an append-only table write.
type AuditSink struct {
	pool *pgxpool.Pool
}

// NewAuditSink returns a new sink instance.
func NewAuditSink(pool *pgxpool.Pool) *AuditSink {
	return &AuditSink{pool: pool}
}

// Record appends one authentication attempt. Callers are expected to treat
// failures as best-effort; the sink itself does not retry.
func (s *AuditSink) Record(ctx context.Context, entry domain.AuthLog) error {
	if entry.DateUsed.IsZero() {
		entry.DateUsed = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO auth_logs (user_id, username, ip_address, requested_url, message, authenticated, date_used)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		entry.UserID, entry.Username, entry.IPAddress, entry.RequestedURL,
		entry.Message, entry.Authenticated, entry.DateUsed)
	return err
}
