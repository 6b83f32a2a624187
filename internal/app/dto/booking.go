package dto

import (
	"time"

	domainbooking "luxestay/internal/domain/booking"
	domainproperty "luxestay/internal/domain/property"
	domainuser "luxestay/internal/domain/user"
)

type QuoteView struct {
	PropertyID  string `json:"property_id"`
	Nights      int    `json:"nights"`
	RateCents   int64  `json:"rate_cents"`
	TotalCents  int64  `json:"total_cents"`
	Currency    string `json:"currency"`
	Provisional bool   `json:"provisional"`
}

func NewQuoteView(p *domainproperty.Property, q domainbooking.Quote) QuoteView {
	return QuoteView{
		PropertyID:  string(p.ID),
		Nights:      q.Nights,
		RateCents:   p.NightlyRate.Amount,
		TotalCents:  q.Total.Amount,
		Currency:    q.Total.Currency,
		Provisional: q.Provisional,
	}
}

// Receipt is the confirmation payload returned after a successful booking.
type Receipt struct {
	BookingID     string    `json:"booking_id"`
	PropertyName  string    `json:"property_name"`
	Location      string    `json:"location"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	Nights        int       `json:"nights"`
	RateCents     int64     `json:"rate_cents"`
	TotalCents    int64     `json:"total_cents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	BookedAt      time.Time `json:"booked_at"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
}

func NewReceipt(b *domainbooking.Booking, p *domainproperty.Property, u *domainuser.User) Receipt {
	r := Receipt{
		BookingID:  string(b.ID),
		CheckIn:    b.Range.CheckIn,
		CheckOut:   b.Range.CheckOut,
		Guests:     b.Guests,
		Nights:     b.Range.Nights(),
		RateCents:  b.NightlyRate.Amount,
		TotalCents: b.Total.Amount,
		Currency:   b.Total.Currency,
		Status:     string(b.Status),
		BookedAt:   b.CreatedAt,
	}
	if p != nil {
		r.PropertyName = p.Name
		r.Location = p.Location
	}
	if u != nil {
		r.CustomerName = u.Name
		r.CustomerEmail = u.Email
	}
	return r
}

type TripView struct {
	BookingID  string        `json:"booking_id"`
	Status     string        `json:"status"`
	CheckIn    time.Time     `json:"check_in"`
	CheckOut   time.Time     `json:"check_out"`
	Guests     int           `json:"guests"`
	Nights     int           `json:"nights"`
	TotalCents int64         `json:"total_cents"`
	Currency   string        `json:"currency"`
	Property   *PropertyView `json:"property,omitempty"`
}

type TripsView struct {
	Upcoming []TripView `json:"upcoming"`
	Past     []TripView `json:"past"`
}

func NewTripView(b *domainbooking.Booking, p *domainproperty.Property, status domainbooking.Status) TripView {
	view := TripView{
		BookingID:  string(b.ID),
		Status:     string(status),
		CheckIn:    b.Range.CheckIn,
		CheckOut:   b.Range.CheckOut,
		Guests:     b.Guests,
		Nights:     b.Range.Nights(),
		TotalCents: b.Total.Amount,
		Currency:   b.Total.Currency,
	}
	if p != nil {
		pv := NewPropertyView(p)
		view.Property = &pv
	}
	return view
}
