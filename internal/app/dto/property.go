package dto

import (
	domainproperty "luxestay/internal/domain/property"
)

type HostView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type PropertyView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Location    string   `json:"location"`
	Country     string   `json:"country"`
	Type        string   `json:"type"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	MaxGuests   int      `json:"max_guests"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Host        HostView `json:"host"`
	Featured    bool     `json:"featured"`
}

type PropertyPage struct {
	Items []PropertyView `json:"items"`
	Total int            `json:"total"`
}

func NewPropertyView(p *domainproperty.Property) PropertyView {
	return PropertyView{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.NightlyRate.Amount,
		Currency:    p.NightlyRate.Currency,
		Location:    p.Location,
		Country:     p.Country,
		Type:        string(p.Type),
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		MaxGuests:   p.MaxGuests,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Amenities:   p.Amenities,
		Images:      p.Images,
		Host:        HostView{ID: p.Host.ID, Name: p.Host.Name, Image: p.Host.Image},
		Featured:    p.Featured,
	}
}

func NewPropertyPage(res domainproperty.SearchResult) PropertyPage {
	items := make([]PropertyView, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, NewPropertyView(p))
	}
	return PropertyPage{Items: items, Total: res.Total}
}
