package wishlist

import (
	"context"
	"errors"
	"time"

	"luxestay/internal/domain/property"
	"luxestay/internal/domain/user"
)

var (
	ErrNotFound      = errors.New("wishlist: entry not found")
	ErrAlreadySaved  = errors.New("wishlist: property already saved")
	ErrUserRequired  = errors.New("wishlist: user id is required")
	ErrPropertyEmpty = errors.New("wishlist: property id is required")
)

// Entry links a user to a saved property.
type Entry struct {
	UserID     user.ID
	PropertyID property.ID
	SavedAt    time.Time
}

func NewEntry(userID user.ID, propertyID property.ID, now time.Time) (Entry, error) {
	if userID == "" {
		return Entry{}, ErrUserRequired
	}
	if propertyID == "" {
		return Entry{}, ErrPropertyEmpty
	}
	return Entry{UserID: userID, PropertyID: propertyID, SavedAt: now.UTC()}, nil
}

type Repository interface {
	Add(ctx context.Context, entry Entry) error
	Remove(ctx context.Context, userID user.ID, propertyID property.ID) error
	Contains(ctx context.Context, userID user.ID, propertyID property.ID) (bool, error)
	ListByUser(ctx context.Context, userID user.ID) ([]Entry, error)
}
