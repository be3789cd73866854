// Package session owns the per-shopper state: one cart engine, one view
// router, one checkout submitter and one notification feed per session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/build0hq/storefront-session/internal/cart"
	"github.com/build0hq/storefront-session/internal/checkout"
	"github.com/build0hq/storefront-session/internal/nav"
	"github.com/build0hq/storefront-session/internal/notifications"
)

// Session is the unit of isolation. The engine, router and feed are not
// individually synchronized; every access goes through Do, which serializes
// the whole session.
type Session struct {
	ID        uuid.UUID
	Cart      *cart.Engine
	Nav       *nav.Router
	Submitter *checkout.Submitter
	Feed      *notifications.Feed

	mu       sync.Mutex
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's state and refreshes the
// idle clock.
func (s *Session) Do(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s)
}

// Touch refreshes the idle clock without running work.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen returns the time of the most recent access.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
