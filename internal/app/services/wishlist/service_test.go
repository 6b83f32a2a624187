package wishlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wishlistsvc "luxestay/internal/app/services/wishlist"
	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/money"
	"luxestay/internal/infra/storage/memory"
)

func newService(t *testing.T) (*wishlistsvc.Service, *memory.PropertyRepository) {
	t.Helper()
	props := memory.NewPropertyRepository()
	return &wishlistsvc.Service{
		Wishlist:   memory.NewWishlistRepository(),
		Properties: props,
		Now:        func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	}, props
}

func seedProperty(t *testing.T, props *memory.PropertyRepository, id string) {
	t.Helper()
	p, err := domainproperty.New(domainproperty.CreateParams{
		ID:          domainproperty.ID(id),
		Name:        "Listing " + id,
		Location:    "Somewhere",
		NightlyRate: money.Must(50000, "USD"),
		MaxGuests:   4,
		Now:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, props.Save(context.Background(), p))
}

func TestToggleFlipsSavedState(t *testing.T) {
	svc, props := newService(t)
	seedProperty(t, props, "p1")
	ctx := context.Background()

	saved, err := svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, saved)

	contains, err := svc.Contains(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, contains)

	saved, err = svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, saved)

	contains, err = svc.Contains(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, contains)
}

func TestToggleRejectsUnknownListing(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Toggle(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, domainproperty.ErrNotFound)
}

func TestListNewestFirstAndSkipsDeleted(t *testing.T) {
	svc, props := newService(t)
	seedProperty(t, props, "p1")
	seedProperty(t, props, "p2")
	seedProperty(t, props, "p3")
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := svc.Toggle(ctx, "u1", id)
		require.NoError(t, err)
	}
	require.NoError(t, props.Delete(ctx, "p2"))

	listed, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, domainproperty.ID("p3"), listed[0].ID)
	assert.Equal(t, domainproperty.ID("p1"), listed[1].ID)
}

func TestListsAreIsolatedPerUser(t *testing.T) {
	svc, props := newService(t)
	seedProperty(t, props, "p1")
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)

	contains, err := svc.Contains(ctx, "u2", "p1")
	require.NoError(t, err)
	assert.False(t, contains)

	listed, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
