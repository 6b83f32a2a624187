package property

import (
	"context"
	"errors"
	"strings"
	"time"

	"luxestay/internal/domain/shared/events"
	"luxestay/internal/domain/shared/money"
)

var (
	ErrNameRequired     = errors.New("property: name is required")
	ErrLocationRequired = errors.New("property: location is required")
	ErrInvalidRate      = errors.New("property: nightly rate must be positive")
	ErrGuestsLimit      = errors.New("property: max guests must be at least 1")
	ErrInvalidType      = errors.New("property: unknown property type")
	ErrNotFound         = errors.New("property: not found")
)

type ID string

type Type string

const (
	TypeVilla     Type = "villa"
	TypeCabin     Type = "cabin"
	TypeCottage   Type = "cottage"
	TypeApartment Type = "apartment"
	TypeHostel    Type = "hostel"
	TypeHotel     Type = "hotel"
)

func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypeVilla, TypeCabin, TypeCottage, TypeApartment, TypeHostel, TypeHotel:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

type Host struct {
	ID    string
	Name  string
	Image string
}

// Property is a bookable listing as shown on the browse and detail views.
type Property struct {
	ID          ID
	Name        string
	Description string
	NightlyRate money.Money
	Location    string
	Country     string
	Type        Type
	Bedrooms    int
	Bathrooms   int
	MaxGuests   int
	Rating      float64
	ReviewCount int
	Amenities   []string
	Images      []string
	Host        Host
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Property, error)
	Save(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id ID) error
	Search(ctx context.Context, f Filter) (SearchResult, error)
}

type CreateParams struct {
	ID          ID
	Name        string
	Description string
	NightlyRate money.Money
	Location    string
	Country     string
	Type        Type
	Bedrooms    int
	Bathrooms   int
	MaxGuests   int
	Rating      float64
	ReviewCount int
	Amenities   []string
	Images      []string
	Host        Host
	Featured    bool
	Now         time.Time
}

func New(params CreateParams) (*Property, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("property: id is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, ErrLocationRequired
	}
	if params.NightlyRate.Amount <= 0 {
		return nil, ErrInvalidRate
	}
	if params.MaxGuests < 1 {
		return nil, ErrGuestsLimit
	}
	if params.Type != "" {
		if _, err := ParseType(string(params.Type)); err != nil {
			return nil, err
		}
	}
	now := params.Now.UTC()
	p := &Property{
		ID:          params.ID,
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		NightlyRate: params.NightlyRate,
		Location:    strings.TrimSpace(params.Location),
		Country:     strings.TrimSpace(params.Country),
		Type:        params.Type,
		Bedrooms:    params.Bedrooms,
		Bathrooms:   params.Bathrooms,
		MaxGuests:   params.MaxGuests,
		Rating:      params.Rating,
		ReviewCount: params.ReviewCount,
		Amenities:   append([]string(nil), params.Amenities...),
		Images:      append([]string(nil), params.Images...),
		Host:        params.Host,
		Featured:    params.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Record(Created{PropertyID: p.ID, Name: p.Name, At: now})
	return p, nil
}

type UpdateParams struct {
	Name        string
	Description string
	NightlyRate money.Money
	Location    string
	Country     string
	Type        Type
	Bedrooms    int
	Bathrooms   int
	MaxGuests   int
	Amenities   []string
	Images      []string
	Featured    bool
	Now         time.Time
}

func (p *Property) Update(params UpdateParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(params.Location) == "" {
		return ErrLocationRequired
	}
	if params.NightlyRate.Amount <= 0 {
		return ErrInvalidRate
	}
	if params.MaxGuests < 1 {
		return ErrGuestsLimit
	}
	if params.Type != "" {
		if _, err := ParseType(string(params.Type)); err != nil {
			return err
		}
	}
	p.Name = strings.TrimSpace(params.Name)
	p.Description = strings.TrimSpace(params.Description)
	p.NightlyRate = params.NightlyRate
	p.Location = strings.TrimSpace(params.Location)
	p.Country = strings.TrimSpace(params.Country)
	p.Type = params.Type
	p.Bedrooms = params.Bedrooms
	p.Bathrooms = params.Bathrooms
	p.MaxGuests = params.MaxGuests
	p.Amenities = append([]string(nil), params.Amenities...)
	p.Images = append([]string(nil), params.Images...)
	p.Featured = params.Featured
	p.UpdatedAt = params.Now.UTC()
	p.Record(Updated{PropertyID: p.ID, At: p.UpdatedAt})
	return nil
}

// AttachPhoto appends an uploaded image URL to the gallery.
func (p *Property) AttachPhoto(url string, now time.Time) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("property: photo url is required")
	}
	p.Images = append(p.Images, url)
	p.UpdatedAt = now.UTC()
	p.Record(Updated{PropertyID: p.ID, At: p.UpdatedAt})
	return nil
}
