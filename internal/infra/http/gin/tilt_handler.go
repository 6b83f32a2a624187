package ginserver

import (
	"log/slog"
	"net/http"
	"sync"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"luxestay/internal/infra/notify"
	"luxestay/internal/tilt"
)

type TiltHTTP interface {
	Start(c *gin.Context)
	Orientation(c *gin.Context)
	HistoryPop(c *gin.Context)
	Get(c *gin.Context)
	Stop(c *gin.Context)
}

// TiltHandler adapts the in-process tilt navigator to HTTP. The browser
// creates a session per view mount and streams orientation samples to it.
type TiltHandler struct {
	Notifications *notify.Center
	Logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*tiltSession
}

type tiltSession struct {
	id      string
	userID  string
	session *tilt.Session
	router  *viewStateRouter
}

// viewStateRouter tracks the client's current view server-side. The client
// reports view changes through orientation requests; navigation decided here
// is returned for the client to execute.
type viewStateRouter struct {
	mu      sync.Mutex
	current string
	pending []string
}

func (r *viewStateRouter) NavigateTo(view string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = view
	r.pending = append(r.pending, view)
}

func (r *viewStateRouter) CurrentView() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *viewStateRouter) setCurrent(view string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if view != "" {
		r.current = view
	}
}

func (r *viewStateRouter) drainPending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

func NewTiltHandler(notifications *notify.Center, logger *slog.Logger) *TiltHandler {
	return &TiltHandler{
		Notifications: notifications,
		Logger:        logger,
		sessions:      make(map[string]*tiltSession),
	}
}

type startTiltRequest struct {
	SourceView       string `json:"source_view"`
	TargetView       string `json:"target_view"`
	SensingAvailable *bool  `json:"sensing_available"`
}

func (h *TiltHandler) Start(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	var req startTiltRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SourceView == "" || req.TargetView == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_view and target_view are required"})
		return
	}
	available := true
	if req.SensingAvailable != nil {
		available = *req.SensingAvailable
	}

	router := &viewStateRouter{current: req.SourceView}
	var notifier tilt.Notifier
	if h.Notifications != nil {
		notifier = h.Notifications.ForUser(p.ID)
	}
	nav := tilt.NewNavigator(router, notifier, h.Logger, tilt.WithSensingAvailable(available))
	session := nav.Start(req.SourceView, req.TargetView)

	ts := &tiltSession{id: uuid.NewString(), userID: p.ID, session: session, router: router}
	h.mu.Lock()
	h.sessions[ts.id] = ts
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"session_id": ts.id,
		"active":     session.Active(),
	})
}

type orientationRequest struct {
	Beta        float64 `json:"beta"`
	Gamma       float64 `json:"gamma"`
	CurrentView string  `json:"current_view"`
}

func (h *TiltHandler) Orientation(c *gin.Context) {
	ts, ok := h.lookup(c)
	if !ok {
		return
	}
	var req orientationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ts.router.setCurrent(req.CurrentView)
	ts.session.Observe(req.Beta, req.Gamma)
	c.JSON(http.StatusAccepted, gin.H{
		"triggered": ts.session.Triggered(),
	})
}

func (h *TiltHandler) HistoryPop(c *gin.Context) {
	ts, ok := h.lookup(c)
	if !ok {
		return
	}
	ts.session.HistoryPopped()
	c.Status(http.StatusNoContent)
}

func (h *TiltHandler) Get(c *gin.Context) {
	ts, ok := h.lookup(c)
	if !ok {
		return
	}
	source, target := ts.session.Views()
	c.JSON(http.StatusOK, gin.H{
		"session_id":   ts.id,
		"active":       ts.session.Active(),
		"triggered":    ts.session.Triggered(),
		"source_view":  source,
		"target_view":  target,
		"current_view": ts.router.CurrentView(),
		"navigations":  ts.router.drainPending(),
	})
}

func (h *TiltHandler) Stop(c *gin.Context) {
	ts, ok := h.lookup(c)
	if !ok {
		return
	}
	ts.session.Stop()
	h.mu.Lock()
	delete(h.sessions, ts.id)
	h.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (h *TiltHandler) lookup(c *gin.Context) (*tiltSession, bool) {
	p, ok := requireUser(c)
	if !ok {
		return nil, false
	}
	h.mu.RLock()
	ts, found := h.sessions[c.Param("id")]
	h.mu.RUnlock()
	if !found || ts.userID != p.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return ts, true
}

var _ TiltHTTP = (*TiltHandler)(nil)
