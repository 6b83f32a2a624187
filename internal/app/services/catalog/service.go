package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "luxestay/internal/app/outbox"
	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/events"
	"luxestay/internal/domain/shared/money"
)

// Uploader stores binary content and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// Service exposes the listing catalog: public browse and detail plus the
// admin-side write operations.
type Service struct {
	Properties domainproperty.Repository
	Uploader   Uploader
	Outbox     appoutbox.Outbox
	Encoder    appoutbox.EventEncoder
	Now        func() time.Time
	Logger     *slog.Logger
}

// Search runs the browse filter. Ordering happens inside the repository,
// ahead of paging, so a limited page holds the head of the requested sort.
func (s *Service) Search(ctx context.Context, f domainproperty.Filter) (domainproperty.SearchResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return domainproperty.SearchResult{}, err
	}
	return s.Properties.Search(ctx, f.Normalized())
}

func (s *Service) Get(ctx context.Context, id string) (*domainproperty.Property, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	return s.Properties.ByID(ctx, domainproperty.ID(strings.TrimSpace(id)))
}

// Featured returns the listings highlighted on the landing view.
func (s *Service) Featured(ctx context.Context, limit int) ([]*domainproperty.Property, error) {
	res, err := s.Search(ctx, domainproperty.Filter{FeaturedOnly: true, Sort: domainproperty.SortByRating, Limit: limit})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

type ListingInput struct {
	Name        string
	Description string
	RateCents   int64
	Currency    string
	Location    string
	Country     string
	Type        string
	Bedrooms    int
	Bathrooms   int
	MaxGuests   int
	Amenities   []string
	Images      []string
	Host        domainproperty.Host
	Featured    bool
}

// Create adds a listing on behalf of an admin.
func (s *Service) Create(ctx context.Context, input ListingInput) (*domainproperty.Property, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	rate, err := money.New(input.RateCents, defaultCurrency(input.Currency))
	if err != nil {
		return nil, err
	}
	typ, err := parseOptionalType(input.Type)
	if err != nil {
		return nil, err
	}
	p, err := domainproperty.New(domainproperty.CreateParams{
		ID:          domainproperty.ID(uuid.NewString()),
		Name:        input.Name,
		Description: input.Description,
		NightlyRate: rate,
		Location:    input.Location,
		Country:     input.Country,
		Type:        typ,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		MaxGuests:   input.MaxGuests,
		Amenities:   input.Amenities,
		Images:      input.Images,
		Host:        input.Host,
		Featured:    input.Featured,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.saveAndDrain(ctx, p); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("listing created", "property_id", p.ID, "name", p.Name)
	}
	return p, nil
}

// Update replaces the editable listing fields.
func (s *Service) Update(ctx context.Context, id string, input ListingInput) (*domainproperty.Property, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	p, err := s.Properties.ByID(ctx, domainproperty.ID(id))
	if err != nil {
		return nil, err
	}
	rate, err := money.New(input.RateCents, defaultCurrency(input.Currency))
	if err != nil {
		return nil, err
	}
	typ, err := parseOptionalType(input.Type)
	if err != nil {
		return nil, err
	}
	err = p.Update(domainproperty.UpdateParams{
		Name:        input.Name,
		Description: input.Description,
		NightlyRate: rate,
		Location:    input.Location,
		Country:     input.Country,
		Type:        typ,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		MaxGuests:   input.MaxGuests,
		Amenities:   input.Amenities,
		Images:      input.Images,
		Featured:    input.Featured,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.saveAndDrain(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ensureDependencies(); err != nil {
		return err
	}
	p, err := s.Properties.ByID(ctx, domainproperty.ID(id))
	if err != nil {
		return err
	}
	if err := s.Properties.Delete(ctx, p.ID); err != nil {
		return err
	}
	ev := domainproperty.Deleted{PropertyID: p.ID, At: s.now().UTC()}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, []events.DomainEvent{ev}); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("listing deleted", "property_id", p.ID)
	}
	return nil
}

// UploadPhoto stores the image and appends its URL to the gallery.
func (s *Service) UploadPhoto(ctx context.Context, id, filename, contentType string, reader io.Reader) (*domainproperty.Property, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if s.Uploader == nil {
		return nil, errors.New("catalog: uploader not configured")
	}
	p, err := s.Properties.ByID(ctx, domainproperty.ID(id))
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("properties/%s/%s%s", p.ID, uuid.NewString(), path.Ext(filename))
	url, err := s.Uploader.Upload(ctx, key, reader, contentType)
	if err != nil {
		return nil, err
	}
	if err := p.AttachPhoto(url, s.now()); err != nil {
		return nil, err
	}
	if err := s.saveAndDrain(ctx, p); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("listing photo attached", "property_id", p.ID, "url", url)
	}
	return p, nil
}

func (s *Service) saveAndDrain(ctx context.Context, p *domainproperty.Property) error {
	if err := s.Properties.Save(ctx, p); err != nil {
		return err
	}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, p.PendingEvents()); err != nil {
		return err
	}
	p.ClearEvents()
	return nil
}

func parseOptionalType(raw string) (domainproperty.Type, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return domainproperty.ParseType(raw)
}

func defaultCurrency(code string) string {
	if strings.TrimSpace(code) == "" {
		return "USD"
	}
	return code
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ensureDependencies() error {
	if s.Properties == nil {
		return errors.New("catalog: property repository required")
	}
	return nil
}
