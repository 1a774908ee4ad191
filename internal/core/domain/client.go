package domain

import "time"

// APIClient is an OAuth2 client-credentials pair provisioned for a user.
// Only the bcrypt hash of the secret is stored; the plaintext is returned
// once at provisioning time.
type APIClient struct {
	ClientID   string
	UserID     int64
	Name       string
	SecretHash string
	CreatedAt  time.Time
}
