package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cedar-ads/internal/core/domain"
)

type ownedRow struct {
	id           int64
	advertiserID int64
}

func ownerOf(r ownedRow) int64 { return r.advertiserID }

var mixedRows = []ownedRow{
	{id: 1, advertiserID: 42},
	{id: 2, advertiserID: 7},
	{id: 3, advertiserID: 42},
	{id: 4, advertiserID: 9},
	{id: 5, advertiserID: 42},
}

func TestFilterIdentityForStaff(t *testing.T) {
	for _, p := range []domain.Principal{{IsSuperuser: true}, {IsStaff: true}} {
		got, err := FilterOwned(mixedRows, ownerOf, p)
		require.NoError(t, err)
		require.Equal(t, mixedRows, got)
	}
}

func TestFilterKeepsOwnRowsInOrder(t *testing.T) {
	p := domain.Principal{Groups: []string{domain.GroupAdvertisers}, AdvertiserID: 42}
	got, err := FilterOwned(mixedRows, ownerOf, p)
	require.NoError(t, err)
	require.Equal(t, []ownedRow{{1, 42}, {3, 42}, {5, 42}}, got)
}

func TestFilterRepAssignedSubset(t *testing.T) {
	rep := domain.Principal{Groups: []string{domain.GroupAccountReps}, RepAdvertiserIDs: []int64{7, 9}}
	got, err := FilterOwned(mixedRows, ownerOf, rep)
	require.NoError(t, err)
	require.Equal(t, []ownedRow{{2, 7}, {4, 9}}, got)
}

func TestFilterRepWithoutAssignmentsReturnsEmpty(t *testing.T) {
	rep := domain.Principal{Groups: []string{domain.GroupAccountReps}}
	got, err := FilterOwned(mixedRows, ownerOf, rep)
	require.NoError(t, err)
	require.Empty(t, got)
}

// A principal with no recognised role gets a hard deny, which is distinct
// from a result filtered down to nothing.
func TestFilterNoRoleIsDenied(t *testing.T) {
	_, err := FilterOwned(mixedRows, ownerOf, domain.Principal{})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = FilterOwned(mixedRows, ownerOf, domain.Principal{Groups: []string{domain.GroupFinance}})
	require.ErrorIs(t, err, ErrPermissionDenied)
}
