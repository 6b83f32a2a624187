package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "luxestay/internal/domain/booking"
	domainproperty "luxestay/internal/domain/property"
	domainuser "luxestay/internal/domain/user"
	domainwishlist "luxestay/internal/domain/wishlist"
)

// PropertyRepository keeps the listing catalog in memory. Suitable for
// tests and single-process demo setups.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.ID]*domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[domainproperty.ID]*domainproperty.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.ID) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrNotFound
	}
	return cloneProperty(p), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Version++
	r.items[p.ID] = cloneProperty(p)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id domainproperty.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainproperty.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Search filters the catalog, orders the full match set, then applies
// offset/limit paging.
func (r *PropertyRepository) Search(ctx context.Context, f domainproperty.Filter) (domainproperty.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f = f.Normalized()
	matches := make([]*domainproperty.Property, 0, len(r.items))
	for _, p := range r.items {
		select {
		case <-ctx.Done():
			return domainproperty.SearchResult{}, ctx.Err()
		default:
		}
		if f.Matches(p) {
			matches = append(matches, cloneProperty(p))
		}
	}
	// ID order makes the requested sort deterministic across ties.
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	domainproperty.SortItems(matches, f.Sort)

	total := len(matches)
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return domainproperty.SearchResult{Items: matches[start:end], Total: total}, nil
}

func cloneProperty(p *domainproperty.Property) *domainproperty.Property {
	if p == nil {
		return nil
	}
	out := *p
	out.Amenities = append([]string(nil), p.Amenities...)
	out.Images = append([]string(nil), p.Images...)
	out.ClearEvents()
	return &out
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.ID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.ID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := strings.TrimSpace(userID)
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.UserID == id {
			matches = append(matches, cloneBooking(b))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return matches, nil
}

func (r *BookingRepository) ListByProperty(ctx context.Context, propertyID domainproperty.ID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.PropertyID == propertyID {
			matches = append(matches, cloneBooking(b))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Range.CheckIn.Before(matches[j].Range.CheckIn) })
	return matches, nil
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	if b == nil {
		return nil
	}
	out := *b
	out.ClearEvents()
	return &out
}

// WishlistRepository keeps saved-property entries per user.
type WishlistRepository struct {
	mu      sync.RWMutex
	byUser  map[domainuser.ID]map[domainproperty.ID]domainwishlist.Entry
	ordered map[domainuser.ID][]domainproperty.ID
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{
		byUser:  make(map[domainuser.ID]map[domainproperty.ID]domainwishlist.Entry),
		ordered: make(map[domainuser.ID][]domainproperty.ID),
	}
}

func (r *WishlistRepository) Add(ctx context.Context, entry domainwishlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.byUser[entry.UserID]
	if !ok {
		entries = make(map[domainproperty.ID]domainwishlist.Entry)
		r.byUser[entry.UserID] = entries
	}
	if _, exists := entries[entry.PropertyID]; exists {
		return domainwishlist.ErrAlreadySaved
	}
	entries[entry.PropertyID] = entry
	r.ordered[entry.UserID] = append(r.ordered[entry.UserID], entry.PropertyID)
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID domainuser.ID, propertyID domainproperty.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.byUser[userID]
	if !ok {
		return domainwishlist.ErrNotFound
	}
	if _, exists := entries[propertyID]; !exists {
		return domainwishlist.ErrNotFound
	}
	delete(entries, propertyID)
	order := r.ordered[userID]
	for i, id := range order {
		if id == propertyID {
			r.ordered[userID] = append(order[:i], order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *WishlistRepository) Contains(ctx context.Context, userID domainuser.ID, propertyID domainproperty.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.byUser[userID]
	if !ok {
		return false, nil
	}
	_, exists := entries[propertyID]
	return exists, nil
}

// ListByUser returns entries newest first.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainwishlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order := r.ordered[userID]
	entries := r.byUser[userID]
	out := make([]domainwishlist.Entry, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		if entry, ok := entries[order[i]]; ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

var (
	_ domainproperty.Repository = (*PropertyRepository)(nil)
	_ domainbooking.Repository  = (*BookingRepository)(nil)
	_ domainwishlist.Repository = (*WishlistRepository)(nil)
)
