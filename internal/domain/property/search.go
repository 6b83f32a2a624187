package property

import (
	"sort"
	"strings"
)

type Sort string

const (
	SortByPriceAsc  Sort = "price_asc"
	SortByPriceDesc Sort = "price_desc"
	SortByRating    Sort = "rating"
)

// SortItems orders listings in place. Repositories must apply this before
// offset/limit paging so a limited page is the true head of the ordering.
// Unknown sorts leave the slice untouched; ties keep their prior order.
func SortItems(items []*Property, by Sort) {
	switch by {
	case SortByPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].NightlyRate.Amount < items[j].NightlyRate.Amount
		})
	case SortByPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].NightlyRate.Amount > items[j].NightlyRate.Amount
		})
	case SortByRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	}
}

// Filter mirrors the browse view's filter bar: free-text search, property
// type, price ceiling/floor and location substring.
type Filter struct {
	Query         string
	Type          Type
	Location      string
	PriceMinCents int64
	PriceMaxCents int64
	MinGuests     int
	FeaturedOnly  bool
	Sort          Sort
	Limit         int
	Offset        int
}

type SearchResult struct {
	Items []*Property
	Total int
}

const defaultLimit = 24

// Normalized returns a copy with bounds applied and text lowered for matching.
func (f Filter) Normalized() Filter {
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	f.Location = strings.ToLower(strings.TrimSpace(f.Location))
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Matches applies the filter against a single property. Free-text search
// covers name, description, location and country.
func (f Filter) Matches(p *Property) bool {
	if p == nil {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.MinGuests > 0 && p.MaxGuests < f.MinGuests {
		return false
	}
	if f.PriceMinCents > 0 && p.NightlyRate.Amount < f.PriceMinCents {
		return false
	}
	if f.PriceMaxCents > 0 && p.NightlyRate.Amount > f.PriceMaxCents {
		return false
	}
	if f.Location != "" {
		loc := strings.ToLower(p.Location + " " + p.Country)
		if !strings.Contains(loc, f.Location) {
			return false
		}
	}
	if f.Query != "" {
		haystack := strings.ToLower(strings.Join([]string{p.Name, p.Description, p.Location, p.Country}, " "))
		if !strings.Contains(haystack, f.Query) {
			return false
		}
	}
	return true
}
