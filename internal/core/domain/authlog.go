package domain

import "time"

// AuthLog is one append-only record of an API authentication attempt. UserID
// is nil for anonymous attempts. Message carries the authentication error, if
// any.
type AuthLog struct {
	ID            int64
	UserID        *int64
	Username      string
	IPAddress     string
	RequestedURL  string
	Message       string
	Authenticated bool
	DateUsed      time.Time
}
