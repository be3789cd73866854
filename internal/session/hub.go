package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/build0hq/storefront-session/internal/cart"
	"github.com/build0hq/storefront-session/internal/checkout"
	"github.com/build0hq/storefront-session/internal/nav"
	"github.com/build0hq/storefront-session/internal/notifications"
	"github.com/build0hq/storefront-session/pkg/config"
	"github.com/build0hq/storefront-session/pkg/logger"
)

// SubmitterFactory builds the checkout submitter for a new session. The
// feed doubles as the submitter's failure notifier.
type SubmitterFactory func(sessionID uuid.UUID, feed *notifications.Feed) *checkout.Submitter

// Hub is the in-memory registry of live sessions. Sessions idle past the
// configured TTL are evicted by the sweeper.
type Hub struct {
	cfg          config.SessionConfig
	logg         *logger.Logger
	newSubmitter SubmitterFactory

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(cfg config.SessionConfig, logg *logger.Logger, factory SubmitterFactory) *Hub {
	return &Hub{
		cfg:          cfg,
		logg:         logg,
		newSubmitter: factory,
		sessions:     make(map[uuid.UUID]*Session),
		done:         make(chan struct{}),
	}
}

// Create registers a fresh session: empty cart, browse page, idle submitter,
// empty feed.
func (h *Hub) Create() *Session {
	id := uuid.New()
	feed := notifications.NewFeed()

	var submitter *checkout.Submitter
	if h.newSubmitter != nil {
		submitter = h.newSubmitter(id, feed)
	}

	sess := &Session{
		ID:        id,
		Cart:      cart.NewEngine(feed),
		Nav:       nav.NewRouter(),
		Submitter: submitter,
		Feed:      feed,
		lastSeen:  time.Now(),
	}

	h.mu.Lock()
	h.sessions[id] = sess
	h.mu.Unlock()

	if h.logg != nil {
		h.logg.Info(h.logg.WithSessionID(context.Background(), id.String()), "session created")
	}
	return sess
}

// Get returns the session and refreshes its idle clock.
func (h *Hub) Get(id uuid.UUID) (*Session, bool) {
	h.mu.RLock()
	sess, ok := h.sessions[id]
	h.mu.RUnlock()
	if ok {
		sess.Touch()
	}
	return sess, ok
}

// Remove drops a session. It reports whether the session existed.
func (h *Hub) Remove(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[id]; !ok {
		return false
	}
	delete(h.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Start runs the eviction sweeper until ctx is cancelled or Close is called.
func (h *Hub) Start(ctx context.Context) {
	interval := h.cfg.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case now := <-ticker.C:
			evicted := h.Sweep(now)
			if evicted > 0 && h.logg != nil {
				lctx := h.logg.WithField(ctx, "evicted", evicted)
				h.logg.Info(lctx, "idle sessions evicted")
			}
		}
	}
}

// Sweep evicts every session idle for at least the configured TTL and
// returns the number removed.
func (h *Hub) Sweep(now time.Time) int {
	ttl := h.cfg.IdleTTL
	if ttl <= 0 {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	evicted := 0
	for id, sess := range h.sessions {
		if now.Sub(sess.LastSeen()) >= ttl {
			delete(h.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Close stops the sweeper.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
