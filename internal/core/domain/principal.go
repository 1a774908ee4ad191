package domain

// Role group names. The set is closed; membership is resolved once per
// request and never changes during it.
const (
	GroupAdvertisers = "advertisers"
	GroupAccountReps = "account_reps"
	GroupFinance     = "finance"
)

// Principal is the resolved caller of an operation. AdvertiserID is set for
// members of the advertisers group and identifies the advertiser they own.
// RepAdvertiserIDs is the advertiser subset assigned to an account rep; the
// assignment itself is maintained outside the access core and injected here.
type Principal struct {
	UserID      int64
	Email       string
	IsSuperuser bool
	IsStaff     bool
	Groups      []string

	AdvertiserID     int64
	RepAdvertiserIDs []int64
}

// InGroup reports membership in a named role group.
func (p Principal) InGroup(name string) bool {
	for _, g := range p.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether the principal bypasses ownership checks.
func (p Principal) IsPrivileged() bool {
	return p.IsSuperuser || p.IsStaff
}

// RepHasAdvertiser reports whether advertiserID is in the rep's assigned set.
func (p Principal) RepHasAdvertiser(advertiserID int64) bool {
	for _, id := range p.RepAdvertiserIDs {
		if id == advertiserID {
			return true
		}
	}
	return false
}
