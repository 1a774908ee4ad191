package access

import "cedar-ads/internal/core/domain"

// FilterOwned narrows a list result to the rows visible to the caller,
// preserving order. advertiserID resolves the owning advertiser of an item.
// Superusers and staff see everything. Account reps see their assigned
// advertisers; an empty assignment yields an empty result, which is distinct
// from the hard deny returned when the principal holds no recognised role.
func FilterOwned[T any](items []T, advertiserID func(T) int64, p domain.Principal) ([]T, error) {
	if p.IsPrivileged() {
		return items, nil
	}

	if p.InGroup(domain.GroupAccountReps) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if p.RepHasAdvertiser(advertiserID(item)) {
				kept = append(kept, item)
			}
		}
		return kept, nil
	}

	if p.InGroup(domain.GroupAdvertisers) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if advertiserID(item) == p.AdvertiserID {
				kept = append(kept, item)
			}
		}
		return kept, nil
	}

	return nil, ErrPermissionDenied
}
