package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"luxestay/internal/tilt"
)

const maxPerUser = 50

// Notification is one entry in a user's feed.
type Notification struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Kind      string        `json:"kind"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Center keeps a bounded per-user notification feed in memory. It backs the
// notifications endpoint and serves as the tilt navigator's notifier.
type Center struct {
	mu    sync.RWMutex
	feeds map[string][]Notification
	now   func() time.Time
}

func NewCenter() *Center {
	return &Center{feeds: make(map[string][]Notification), now: time.Now}
}

// Push appends to the user's feed, evicting the oldest entry when full.
func (c *Center) Push(userID, message string, kind tilt.Kind, duration time.Duration) {
	if userID == "" || message == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	feed := append(c.feeds[userID], Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      string(kind),
		Duration:  duration,
		CreatedAt: c.now().UTC(),
	})
	if len(feed) > maxPerUser {
		feed = feed[len(feed)-maxPerUser:]
	}
	c.feeds[userID] = feed
}

// ListForUser returns the feed newest first.
func (c *Center) ListForUser(userID string) []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	feed := c.feeds[userID]
	out := make([]Notification, 0, len(feed))
	for i := len(feed) - 1; i >= 0; i-- {
		out = append(out, feed[i])
	}
	return out
}

// ForUser adapts the center to the tilt navigator's notifier contract for a
// single user.
func (c *Center) ForUser(userID string) tilt.Notifier {
	return userNotifier{center: c, userID: userID}
}

type userNotifier struct {
	center *Center
	userID string
}

func (n userNotifier) Notify(message string, kind tilt.Kind, duration time.Duration) {
	n.center.Push(n.userID, message, kind, duration)
}

var _ tilt.Notifier = userNotifier{}
