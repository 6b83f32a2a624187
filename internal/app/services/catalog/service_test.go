package catalog_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "luxestay/internal/app/outbox"
	"luxestay/internal/app/services/catalog"
	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/money"
	"luxestay/internal/infra/storage/memory"
)

type fakeUploader struct {
	lastKey         string
	lastContentType string
}

func (u *fakeUploader) Upload(_ context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	u.lastKey = key
	u.lastContentType = contentType
	return "https://cdn.example.com/" + key, nil
}

func newService(t *testing.T) (*catalog.Service, *memory.Outbox) {
	t.Helper()
	box := memory.NewOutbox()
	svc := &catalog.Service{
		Properties: memory.NewPropertyRepository(),
		Uploader:   &fakeUploader{},
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return svc, box
}

func seedListing(t *testing.T, svc *catalog.Service, name string, rateCents int64, typ string, rating float64, featured bool) *domainproperty.Property {
	t.Helper()
	p, err := svc.Create(context.Background(), catalog.ListingInput{
		Name:      name,
		RateCents: rateCents,
		Location:  "Malibu, California",
		Country:   "United States",
		Type:      typ,
		MaxGuests: 6,
		Featured:  featured,
	})
	require.NoError(t, err)
	p.Rating = rating
	require.NoError(t, svc.Properties.Save(context.Background(), p))
	return p
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), catalog.ListingInput{
		RateCents: 10000, Location: "Bali", MaxGuests: 2,
	})
	assert.ErrorIs(t, err, domainproperty.ErrNameRequired)

	_, err = svc.Create(context.Background(), catalog.ListingInput{
		Name: "Villa", RateCents: 10000, Location: "Bali", MaxGuests: 2, Type: "castle",
	})
	assert.ErrorIs(t, err, domainproperty.ErrInvalidType)

	_, err = svc.Create(context.Background(), catalog.ListingInput{
		Name: "Villa", Location: "Bali", MaxGuests: 2,
	})
	assert.ErrorIs(t, err, domainproperty.ErrInvalidRate)
}

func TestCreateDefaultsCurrency(t *testing.T) {
	svc, box := newService(t)

	p, err := svc.Create(context.Background(), catalog.ListingInput{
		Name: "Villa", RateCents: 95000, Location: "Bali", MaxGuests: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, money.Must(95000, "USD"), p.NightlyRate)
	assert.Equal(t, 1, box.Unsent())
}

func TestSearchSortsByPrice(t *testing.T) {
	svc, _ := newService(t)
	seedListing(t, svc, "Mid", 60000, "apartment", 4.5, false)
	seedListing(t, svc, "Cheap", 30000, "cabin", 4.2, false)
	seedListing(t, svc, "Expensive", 120000, "villa", 4.9, true)

	res, err := svc.Search(context.Background(), domainproperty.Filter{Sort: domainproperty.SortByPriceAsc})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "Cheap", res.Items[0].Name)
	assert.Equal(t, "Expensive", res.Items[2].Name)

	res, err = svc.Search(context.Background(), domainproperty.Filter{Sort: domainproperty.SortByPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "Expensive", res.Items[0].Name)
}

func TestSearchPagesAfterSorting(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	// IDs ascend while prices descend; a limited page must still hold the
	// cheapest listings, not the lowest IDs.
	for i := 1; i <= 6; i++ {
		p, err := domainproperty.New(domainproperty.CreateParams{
			ID:          domainproperty.ID(fmt.Sprintf("p%d", i)),
			Name:        fmt.Sprintf("Listing %d", i),
			Location:    "Lisbon",
			NightlyRate: money.Must(int64(1000-100*i), "USD"),
			MaxGuests:   4,
			Now:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		p.ClearEvents()
		require.NoError(t, svc.Properties.Save(ctx, p))
	}

	res, err := svc.Search(ctx, domainproperty.Filter{Sort: domainproperty.SortByPriceAsc, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(400), res.Items[0].NightlyRate.Amount)
	assert.Equal(t, int64(500), res.Items[1].NightlyRate.Amount)
}

func TestSearchFiltersByTypeAndPrice(t *testing.T) {
	svc, _ := newService(t)
	seedListing(t, svc, "Mid", 60000, "apartment", 4.5, false)
	seedListing(t, svc, "Cheap", 30000, "cabin", 4.2, false)
	seedListing(t, svc, "Expensive", 120000, "villa", 4.9, true)

	res, err := svc.Search(context.Background(), domainproperty.Filter{Type: domainproperty.TypeCabin})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Cheap", res.Items[0].Name)

	res, err = svc.Search(context.Background(), domainproperty.Filter{PriceMaxCents: 70000, PriceMinCents: 40000})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Mid", res.Items[0].Name)
}

func TestFeaturedReturnsHighlightedOnly(t *testing.T) {
	svc, _ := newService(t)
	seedListing(t, svc, "Plain", 60000, "apartment", 4.5, false)
	featured := seedListing(t, svc, "Star", 120000, "villa", 4.9, true)

	items, err := svc.Featured(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, featured.ID, items[0].ID)
}

func TestUpdateReplacesFields(t *testing.T) {
	svc, _ := newService(t)
	p := seedListing(t, svc, "Old Name", 60000, "apartment", 4.5, false)

	updated, err := svc.Update(context.Background(), string(p.ID), catalog.ListingInput{
		Name:      "New Name",
		RateCents: 75000,
		Location:  "Prague",
		Country:   "Czech Republic",
		Type:      "apartment",
		MaxGuests: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, int64(75000), updated.NightlyRate.Amount)
	assert.Equal(t, "Prague", updated.Location)
}

func TestDeleteRemovesListingAndQueuesEvent(t *testing.T) {
	svc, box := newService(t)
	p := seedListing(t, svc, "Doomed", 60000, "apartment", 4.5, false)
	queued := box.Unsent()

	require.NoError(t, svc.Delete(context.Background(), string(p.ID)))
	_, err := svc.Get(context.Background(), string(p.ID))
	assert.ErrorIs(t, err, domainproperty.ErrNotFound)
	assert.Equal(t, queued+1, box.Unsent())

	assert.ErrorIs(t, svc.Delete(context.Background(), string(p.ID)), domainproperty.ErrNotFound)
}

func TestUploadPhotoAppendsToGallery(t *testing.T) {
	svc, _ := newService(t)
	uploader := svc.Uploader.(*fakeUploader)
	p := seedListing(t, svc, "Villa", 60000, "villa", 4.5, false)

	updated, err := svc.UploadPhoto(context.Background(), string(p.ID), "pool.jpg", "image/jpeg", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	require.Len(t, updated.Images, 1)
	assert.True(t, strings.HasPrefix(uploader.lastKey, "properties/"+string(p.ID)+"/"))
	assert.True(t, strings.HasSuffix(uploader.lastKey, ".jpg"))
	assert.Equal(t, "image/jpeg", uploader.lastContentType)
	assert.Equal(t, "https://cdn.example.com/"+uploader.lastKey, updated.Images[0])
}
