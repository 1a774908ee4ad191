package domain

import "time"

// Advertiser owns campaigns. Its status is independent of the statuses of
// the campaigns below it.
type Advertiser struct {
	ID        int64
	UserID    int64
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
