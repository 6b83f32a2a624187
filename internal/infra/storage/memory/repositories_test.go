package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "luxestay/internal/app/outbox"
	domainbooking "luxestay/internal/domain/booking"
	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/daterange"
	"luxestay/internal/domain/shared/money"
	domainwishlist "luxestay/internal/domain/wishlist"
	"luxestay/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newProperty(t *testing.T, id string) *domainproperty.Property {
	t.Helper()
	p, err := domainproperty.New(domainproperty.CreateParams{
		ID:          domainproperty.ID(id),
		Name:        "Listing " + id,
		Location:    "Somewhere",
		NightlyRate: money.Must(50000, "USD"),
		MaxGuests:   4,
		Amenities:   []string{"WiFi"},
		Now:         date(2025, 1, 1),
	})
	require.NoError(t, err)
	return p
}

func TestPropertyRepositorySearchPaging(t *testing.T) {
	repo := memory.NewPropertyRepository()
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(ctx, newProperty(t, fmt.Sprintf("p%d", i))))
	}

	page, err := repo.Search(ctx, domainproperty.Filter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, domainproperty.ID("p1"), page.Items[0].ID)

	page, err = repo.Search(ctx, domainproperty.Filter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domainproperty.ID("p5"), page.Items[0].ID)

	page, err = repo.Search(ctx, domainproperty.Filter{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.Total)
}

func TestPropertyRepositorySearchSortsBeforePaging(t *testing.T) {
	repo := memory.NewPropertyRepository()
	ctx := context.Background()
	// IDs ascend while prices descend, so ID-order paging would return the
	// most expensive listings first.
	for i := 1; i <= 6; i++ {
		p := newProperty(t, fmt.Sprintf("p%d", i))
		p.NightlyRate = money.Must(int64(1000-100*i), "USD")
		require.NoError(t, repo.Save(ctx, p))
	}

	page, err := repo.Search(ctx, domainproperty.Filter{Sort: domainproperty.SortByPriceAsc, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(400), page.Items[0].NightlyRate.Amount)
	assert.Equal(t, int64(500), page.Items[1].NightlyRate.Amount)

	page, err = repo.Search(ctx, domainproperty.Filter{Sort: domainproperty.SortByPriceDesc, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(800), page.Items[0].NightlyRate.Amount)
	assert.Equal(t, int64(700), page.Items[1].NightlyRate.Amount)
}

func TestPropertyRepositoryClonesOnReadAndWrite(t *testing.T) {
	repo := memory.NewPropertyRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newProperty(t, "p1")))

	first, err := repo.ByID(ctx, "p1")
	require.NoError(t, err)
	first.Name = "mutated"
	first.Amenities[0] = "mutated"

	second, err := repo.ByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Listing p1", second.Name)
	assert.Equal(t, []string{"WiFi"}, second.Amenities)
	assert.Empty(t, second.PendingEvents())
}

func TestPropertyRepositoryDelete(t *testing.T) {
	repo := memory.NewPropertyRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newProperty(t, "p1")))

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err := repo.ByID(ctx, "p1")
	assert.ErrorIs(t, err, domainproperty.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), domainproperty.ErrNotFound)
}

func newBooking(t *testing.T, id, userID string, in, out, createdAt time.Time) *domainbooking.Booking {
	t.Helper()
	dr, err := daterange.New(in, out)
	require.NoError(t, err)
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID: domainbooking.ID(id),
		Request: domainbooking.Request{
			PropertyID:  "p1",
			UserID:      userID,
			CheckIn:     in,
			CheckOut:    out,
			Guests:      2,
			MaxGuests:   4,
			NightlyRate: money.Must(50000, "USD"),
		},
		Range:     dr,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return b
}

func TestBookingRepositoryListOrdering(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	older := newBooking(t, "b1", "u1", date(2025, 7, 1), date(2025, 7, 5), date(2025, 6, 1))
	newer := newBooking(t, "b2", "u1", date(2025, 6, 10), date(2025, 6, 12), date(2025, 6, 3))
	other := newBooking(t, "b3", "u2", date(2025, 6, 20), date(2025, 6, 22), date(2025, 6, 2))
	for _, b := range []*domainbooking.Booking{older, newer, other} {
		require.NoError(t, repo.Save(ctx, b))
	}

	byUser, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, domainbooking.ID("b2"), byUser[0].ID, "newest created first")
	assert.Equal(t, domainbooking.ID("b1"), byUser[1].ID)

	byProperty, err := repo.ListByProperty(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byProperty, 3)
	assert.Equal(t, domainbooking.ID("b2"), byProperty[0].ID, "earliest check-in first")
	assert.Equal(t, domainbooking.ID("b1"), byProperty[2].ID)
}

func TestBookingRepositorySaveBumpsVersion(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()
	b := newBooking(t, "b1", "u1", date(2025, 7, 1), date(2025, 7, 5), date(2025, 6, 1))

	require.NoError(t, repo.Save(ctx, b))
	assert.Equal(t, int64(1), b.Version)
	require.NoError(t, repo.Save(ctx, b))
	assert.Equal(t, int64(2), b.Version)

	_, err := repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, domainbooking.ErrNotFound)
}

func TestWishlistRepository(t *testing.T) {
	repo := memory.NewWishlistRepository()
	ctx := context.Background()

	add := func(propertyID string, at time.Time) {
		entry, err := domainwishlist.NewEntry("u1", domainproperty.ID(propertyID), at)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, entry))
	}
	add("p1", date(2025, 6, 1))
	add("p2", date(2025, 6, 2))

	dup, err := domainwishlist.NewEntry("u1", "p1", date(2025, 6, 3))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Add(ctx, dup), domainwishlist.ErrAlreadySaved)

	entries, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domainproperty.ID("p2"), entries[0].PropertyID, "newest first")

	require.NoError(t, repo.Remove(ctx, "u1", "p1"))
	assert.ErrorIs(t, repo.Remove(ctx, "u1", "p1"), domainwishlist.ErrNotFound)

	contains, err := repo.Contains(ctx, "u1", "p2")
	require.NoError(t, err)
	assert.True(t, contains)
}

func TestOutboxClaimLifecycle(t *testing.T) {
	box := memory.NewOutbox()
	ctx := context.Background()
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "evt-1", Name: "booking.created", Payload: []byte(`{}`)}))

	entry, err := box.Claim(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "evt-1", entry.ID)

	// Claimed entries are invisible to other workers.
	second, err := box.Claim(ctx, "w2")
	require.NoError(t, err)
	assert.Nil(t, second)

	// A failure releases the claim once the retry delay elapses.
	require.NoError(t, box.MarkFailed(ctx, "evt-1", time.Now().Add(-time.Second), "boom"))
	entry, err = box.Claim(ctx, "w2")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Attempts)

	require.NoError(t, box.MarkSent(ctx, "evt-1"))
	assert.Equal(t, 0, box.Unsent())
	entry, err = box.Claim(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
