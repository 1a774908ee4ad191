package configs

import "time"

// Auth configures access-token issuing for the API surface. The secret
// signs HS256 tokens; TokenTTL bounds their lifetime.
type Auth struct {
	// Secret is the shared HMAC signing key. The default exists for local
	// development only.
	Secret string `env:"SECRET" envDefault:"dev-secret-change-me"`
	// TokenTTL is the access-token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}
