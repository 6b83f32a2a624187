package booking

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "luxestay/internal/app/outbox"
	domainbooking "luxestay/internal/domain/booking"
	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/daterange"
	"luxestay/internal/domain/user"
)

// Service owns the booking lifecycle: price preview, creation with the
// validation gate, cancellation and trip listings.
type Service struct {
	Bookings   domainbooking.Repository
	Properties domainproperty.Repository
	Outbox     appoutbox.Outbox
	Encoder    appoutbox.EventEncoder
	Now        func() time.Time
	Logger     *slog.Logger
}

type QuoteParams struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

type QuoteResult struct {
	Property *domainproperty.Property
	Quote    domainbooking.Quote
}

// Quote prices a stay without reserving anything. Incomplete date
// selections yield a provisional single-night estimate.
func (s *Service) Quote(ctx context.Context, params QuoteParams) (*QuoteResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	prop, err := s.Properties.ByID(ctx, domainproperty.ID(params.PropertyID))
	if err != nil {
		return nil, err
	}
	q := domainbooking.NewQuote(prop.NightlyRate, params.CheckIn, params.CheckOut)
	return &QuoteResult{Property: prop, Quote: q}, nil
}

type CreateParams struct {
	UserID     user.ID
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

// Create runs the full gate: request validation, listing capacity and a
// double-booking check, then persists the stay and queues its events.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domainbooking.Booking, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	prop, err := s.Properties.ByID(ctx, domainproperty.ID(params.PropertyID))
	if err != nil {
		return nil, err
	}
	req := domainbooking.Request{
		PropertyID:  prop.ID,
		UserID:      string(params.UserID),
		CheckIn:     params.CheckIn,
		CheckOut:    params.CheckOut,
		Guests:      params.Guests,
		MaxGuests:   prop.MaxGuests,
		NightlyRate: prop.NightlyRate,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dr, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, domainbooking.ErrMissingDates
	}
	existing, err := s.Bookings.ListByProperty(ctx, prop.ID)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.BlocksDates(dr) {
			return nil, domainbooking.ErrDatesTaken
		}
	}
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:        domainbooking.ID(uuid.NewString()),
		Request:   req,
		Range:     dr,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, b.PendingEvents()); err != nil {
		return nil, err
	}
	b.ClearEvents()
	if s.Logger != nil {
		s.Logger.Info("booking confirmed",
			"booking_id", b.ID,
			"property_id", b.PropertyID,
			"user_id", b.UserID,
			"nights", b.Range.Nights(),
			"total_cents", b.Total.Amount)
	}
	return b, nil
}

// Cancel releases the stay's dates. Only the booking owner may cancel.
func (s *Service) Cancel(ctx context.Context, userID user.ID, bookingID string) (*domainbooking.Booking, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	b, err := s.Bookings.ByID(ctx, domainbooking.ID(bookingID))
	if err != nil {
		return nil, err
	}
	if b.UserID != string(userID) {
		return nil, domainbooking.ErrNotFound
	}
	if err := b.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, b.PendingEvents()); err != nil {
		return nil, err
	}
	b.ClearEvents()
	if s.Logger != nil {
		s.Logger.Info("booking cancelled", "booking_id", b.ID, "user_id", b.UserID)
	}
	return b, nil
}

// Trip pairs a booking with its listing for the trips view.
type Trip struct {
	Booking  *domainbooking.Booking
	Property *domainproperty.Property
	Status   domainbooking.Status
}

type Trips struct {
	Upcoming []Trip
	Past     []Trip
}

// ListTrips partitions the user's bookings into upcoming and past stays.
// Ongoing stays count as upcoming; cancelled ones as past.
func (s *Service) ListTrips(ctx context.Context, userID user.ID) (*Trips, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListByUser(ctx, string(userID))
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := &Trips{}
	for _, b := range bookings {
		prop, err := s.Properties.ByID(ctx, b.PropertyID)
		if err != nil {
			if errors.Is(err, domainproperty.ErrNotFound) {
				prop = nil
			} else {
				return nil, err
			}
		}
		trip := Trip{Booking: b, Property: prop, Status: b.EffectiveStatus(now)}
		switch trip.Status {
		case domainbooking.StatusUpcoming, domainbooking.StatusOngoing:
			out.Upcoming = append(out.Upcoming, trip)
		default:
			out.Past = append(out.Past, trip)
		}
	}
	sort.Slice(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].Booking.Range.CheckIn.Before(out.Upcoming[j].Booking.Range.CheckIn)
	})
	sort.Slice(out.Past, func(i, j int) bool {
		return out.Past[i].Booking.Range.CheckIn.After(out.Past[j].Booking.Range.CheckIn)
	})
	return out, nil
}

// Get returns a single booking owned by the user, for the receipt view.
func (s *Service) Get(ctx context.Context, userID user.ID, bookingID string) (*domainbooking.Booking, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	b, err := s.Bookings.ByID(ctx, domainbooking.ID(strings.TrimSpace(bookingID)))
	if err != nil {
		return nil, err
	}
	if b.UserID != string(userID) {
		return nil, domainbooking.ErrNotFound
	}
	return b, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Bookings == nil:
		return errors.New("booking: booking repository required")
	case s.Properties == nil:
		return errors.New("booking: property repository required")
	default:
		return nil
	}
}
