package tilt

import (
	"log/slog"
	"math"
	"sync"
	"time"
)

// Default tuning. Raw device-orientation deltas are noisy and continuous;
// without the one-shot latch a single physical tilt would fire dozens of
// qualifying deltas and trigger repeated navigation.
const (
	DefaultThreshold      = 25.0
	DefaultNavigateDelay  = 500 * time.Millisecond
	DefaultDebounceWindow = 100 * time.Millisecond
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Router changes the active view and reports the current one.
type Router interface {
	NavigateTo(view string)
	CurrentView() string
}

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Notify(message string, kind Kind, duration time.Duration)
}

type timer interface {
	Stop() bool
}

// Navigator converts qualifying device tilts into one-shot view changes.
type Navigator struct {
	router    Router
	notifier  Notifier
	logger    *slog.Logger
	available bool

	threshold      float64
	navigateDelay  time.Duration
	debounceWindow time.Duration

	after func(d time.Duration, f func()) timer
}

type Option func(*Navigator)

func WithThreshold(degrees float64) Option {
	return func(n *Navigator) { n.threshold = degrees }
}

func WithNavigateDelay(d time.Duration) Option {
	return func(n *Navigator) { n.navigateDelay = d }
}

func WithDebounceWindow(d time.Duration) Option {
	return func(n *Navigator) { n.debounceWindow = d }
}

// WithSensingAvailable marks whether the host platform delivers orientation
// events at all. When false every session starts inactive; the feature is an
// optional enhancement, not a required capability.
func WithSensingAvailable(available bool) Option {
	return func(n *Navigator) { n.available = available }
}

func withAfterFunc(after func(d time.Duration, f func()) timer) Option {
	return func(n *Navigator) { n.after = after }
}

func NewNavigator(router Router, notifier Notifier, logger *slog.Logger, opts ...Option) *Navigator {
	n := &Navigator{
		router:         router,
		notifier:       notifier,
		logger:         logger,
		available:      true,
		threshold:      DefaultThreshold,
		navigateDelay:  DefaultNavigateDelay,
		debounceWindow: DefaultDebounceWindow,
		after: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Session watches orientation events for one source/target view pair. It is
// created when the owning view mounts and torn down with Stop when it
// unmounts.
type Session struct {
	nav        *Navigator
	sourceView string
	targetView string

	mu           sync.Mutex
	lastBeta     float64
	lastGamma    float64
	hasTriggered bool
	active       bool

	debounceTimer timer
	pendingBeta   float64
	pendingGamma  float64
	navTimer      timer
}

// Start registers a watcher for the given view pair and announces the
// gesture once. When sensing is unavailable it returns an inactive session
// and nothing else happens.
func (n *Navigator) Start(sourceView, targetView string) *Session {
	s := &Session{nav: n, sourceView: sourceView, targetView: targetView}
	if !n.available {
		if n.logger != nil {
			n.logger.Debug("orientation sensing unavailable, tilt navigation disabled",
				"source", sourceView, "target", targetView)
		}
		return s
	}
	s.active = true
	if n.notifier != nil {
		n.notifier.Notify("Tilt your device to navigate", KindInfo, 3*time.Second)
	}
	return s
}

// Observe accepts a raw orientation sample. Bursts arriving within the
// debounce window collapse to the latest sample before the gesture check
// runs, bounding work on high-frequency sensors.
func (s *Session) Observe(beta, gamma float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.pendingBeta = beta
	s.pendingGamma = gamma
	if s.debounceTimer != nil {
		return
	}
	s.debounceTimer = s.nav.after(s.nav.debounceWindow, s.flushPending)
}

func (s *Session) flushPending() {
	s.mu.Lock()
	s.debounceTimer = nil
	beta, gamma := s.pendingBeta, s.pendingGamma
	s.mu.Unlock()
	s.handleOrientation(beta, gamma)
}

// handleOrientation runs the gesture check against the last observed angles.
// Angles are rounded to whole degrees before differencing to damp sensor
// jitter.
func (s *Session) handleOrientation(beta, gamma float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || s.hasTriggered {
		return
	}
	if s.nav.router.CurrentView() != s.sourceView {
		return
	}
	beta = math.Round(beta)
	gamma = math.Round(gamma)
	betaDiff := math.Abs(beta - s.lastBeta)
	gammaDiff := math.Abs(gamma - s.lastGamma)
	if betaDiff <= s.nav.threshold && gammaDiff <= s.nav.threshold {
		s.lastBeta = beta
		s.lastGamma = gamma
		return
	}
	s.hasTriggered = true
	if s.nav.notifier != nil {
		s.nav.notifier.Notify("Navigating...", KindInfo, s.nav.navigateDelay)
	}
	target := s.targetView
	// The delay lets the notification render before the view changes. It is
	// a one-shot UX debounce, not a retry.
	s.navTimer = s.nav.after(s.nav.navigateDelay, func() {
		s.mu.Lock()
		active := s.active
		s.mu.Unlock()
		if active {
			s.nav.router.NavigateTo(target)
		}
	})
}

// HistoryPopped clears the one-shot latch so the gesture can fire again
// after the user navigates back into the source view.
func (s *Session) HistoryPopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.hasTriggered = false
}

// Stop tears the session down and releases its timers. Idempotent; safe to
// call from every exit path.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
	if s.navTimer != nil {
		s.navTimer.Stop()
		s.navTimer = nil
	}
}

// Active reports whether the session still listens for events.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Triggered reports whether the latch is set.
func (s *Session) Triggered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasTriggered
}

// Views returns the source/target pair this session governs.
func (s *Session) Views() (source, target string) {
	return s.sourceView, s.targetView
}
