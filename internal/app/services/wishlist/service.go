package wishlist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/user"
	domainwishlist "luxestay/internal/domain/wishlist"
)

// Service manages each user's saved-property list.
type Service struct {
	Wishlist   domainwishlist.Repository
	Properties domainproperty.Repository
	Now        func() time.Time
	Logger     *slog.Logger
}

// Toggle flips the saved state of a property and reports the new state.
func (s *Service) Toggle(ctx context.Context, userID user.ID, propertyID string) (saved bool, err error) {
	if err := s.ensureDependencies(); err != nil {
		return false, err
	}
	pid := domainproperty.ID(propertyID)
	exists, err := s.Wishlist.Contains(ctx, userID, pid)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.Wishlist.Remove(ctx, userID, pid); err != nil {
			return false, err
		}
		return false, nil
	}
	// Only real listings can be saved.
	if _, err := s.Properties.ByID(ctx, pid); err != nil {
		return false, err
	}
	entry, err := domainwishlist.NewEntry(userID, pid, s.now())
	if err != nil {
		return false, err
	}
	if err := s.Wishlist.Add(ctx, entry); err != nil {
		if errors.Is(err, domainwishlist.ErrAlreadySaved) {
			return true, nil
		}
		return false, err
	}
	if s.Logger != nil {
		s.Logger.Debug("property saved to wishlist", "user_id", userID, "property_id", pid)
	}
	return true, nil
}

// List returns the user's saved listings, newest first. Entries whose
// listing has since been deleted are skipped.
func (s *Service) List(ctx context.Context, userID user.ID) ([]*domainproperty.Property, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	entries, err := s.Wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domainproperty.Property, 0, len(entries))
	for _, entry := range entries {
		p, err := s.Properties.ByID(ctx, entry.PropertyID)
		if err != nil {
			if errors.Is(err, domainproperty.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Contains reports whether the property is on the user's list.
func (s *Service) Contains(ctx context.Context, userID user.ID, propertyID string) (bool, error) {
	if err := s.ensureDependencies(); err != nil {
		return false, err
	}
	return s.Wishlist.Contains(ctx, userID, domainproperty.ID(propertyID))
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Wishlist == nil:
		return errors.New("wishlist: repository required")
	case s.Properties == nil:
		return errors.New("wishlist: property repository required")
	default:
		return nil
	}
}
