package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/domain"
	"cedar-ads/internal/core/port"
)

func TestAdvertiserCreateStaffOnly(t *testing.T) {
	created := false
	repo := &fakeAdvertiserRepo{
		createFn: func(context.Context, *domain.Advertiser) error {
			created = true
			return nil
		},
	}
	svc := NewAdvertiserUseCase(repo, access.NewEngine())

	err := svc.Create(context.Background(), acmeOwner, &domain.Advertiser{Name: "Second Brand"})
	require.ErrorIs(t, err, access.ErrPermissionDenied)
	assert.False(t, created)

	require.NoError(t, svc.Create(context.Background(), staff, &domain.Advertiser{Name: "Second Brand"}))
	assert.True(t, created)
}

func TestAdvertiserCreateDefaultsToPending(t *testing.T) {
	var stored *domain.Advertiser
	repo := &fakeAdvertiserRepo{
		createFn: func(_ context.Context, a *domain.Advertiser) error {
			stored = a
			return nil
		},
	}
	svc := NewAdvertiserUseCase(repo, access.NewEngine())

	require.NoError(t, svc.Create(context.Background(), staff, &domain.Advertiser{Name: "Acme"}))
	require.NotNil(t, stored)
	assert.Equal(t, domain.StatusPending, stored.Status)

	err := svc.Create(context.Background(), staff, &domain.Advertiser{})
	require.True(t, port.IsValidation(err), "missing name must be a validation failure")
}

func TestAdvertiserListNarrowedToOwnRecord(t *testing.T) {
	repo := &fakeAdvertiserRepo{
		listFn: func(context.Context, port.AdvertiserFilter) ([]domain.Advertiser, error) {
			return []domain.Advertiser{{ID: 7}, {ID: 42}, {ID: 99}}, nil
		},
	}
	svc := NewAdvertiserUseCase(repo, access.NewEngine())

	got, err := svc.List(context.Background(), acmeOwner, port.AdvertiserFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.EqualValues(t, 42, got[0].ID)
}

func TestAdvertiserUpdateOwnRecordAllowed(t *testing.T) {
	var stored *domain.Advertiser
	repo := &fakeAdvertiserRepo{
		getFn: func(context.Context, int64) (*domain.Advertiser, error) {
			return &domain.Advertiser{ID: 42, Name: "Acme", Status: domain.StatusActive}, nil
		},
		updateFn: func(_ context.Context, a *domain.Advertiser) error {
			stored = a
			return nil
		},
	}
	svc := NewAdvertiserUseCase(repo, access.NewEngine())

	name := "Acme Media"
	got, err := svc.Update(context.Background(), acmeOwner, 42, port.AdvertiserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Media", got.Name)
	require.NotNil(t, stored)

	_, err = svc.Update(context.Background(), otherOwner, 42, port.AdvertiserUpdate{Name: &name})
	require.ErrorIs(t, err, access.ErrPermissionDenied)
}

func TestAdvertiserDeleteStaffOnlyAndSoft(t *testing.T) {
	var stored *domain.Advertiser
	repo := &fakeAdvertiserRepo{
		getFn: func(context.Context, int64) (*domain.Advertiser, error) {
			return &domain.Advertiser{ID: 42, Status: domain.StatusActive}, nil
		},
		updateFn: func(_ context.Context, a *domain.Advertiser) error {
			stored = a
			return nil
		},
	}
	svc := NewAdvertiserUseCase(repo, access.NewEngine())

	err := svc.Delete(context.Background(), acmeOwner, 42)
	require.ErrorIs(t, err, access.ErrPermissionDenied, "owners cannot retire their own record")

	require.NoError(t, svc.Delete(context.Background(), staff, 42))
	require.NotNil(t, stored)
	assert.Equal(t, domain.StatusDeleted, stored.Status)
}
