package notifications

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for the client UI.
type Kind string

const (
	KindItemAdded      Kind = "item_added"
	KindItemRemoved    Kind = "item_removed"
	KindCheckoutFailed Kind = "checkout_failed"
)

// ActionViewCart is the shortcut offered alongside an add-to-cart
// confirmation.
const ActionViewCart = "view_cart"

// Notification is one user-facing message in a session's feed.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Action    string    `json:"action,omitempty"`
	Blocking  bool      `json:"blocking,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

const defaultCapacity = 50

// Feed is a bounded, session-scoped notification list. Oldest entries are
// dropped once the capacity is reached.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	cap   int
}

func NewFeed() *Feed {
	return &Feed{cap: defaultCapacity}
}

func (f *Feed) push(n Notification) Notification {
	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.cap {
		f.items = f.items[len(f.items)-f.cap:]
	}
	return n
}

// ItemAdded records an add-to-cart confirmation naming the product and the
// quantity just merged, with a view-cart shortcut.
func (f *Feed) ItemAdded(name string, quantity int) {
	f.push(Notification{
		Kind:    KindItemAdded,
		Message: fmt.Sprintf("%s added to cart (quantity: %d)", name, quantity),
		Action:  ActionViewCart,
	})
}

// ItemRemoved records a removal confirmation.
func (f *Feed) ItemRemoved(name string) {
	f.push(Notification{
		Kind:    KindItemRemoved,
		Message: fmt.Sprintf("%s removed from cart", name),
	})
}

// CheckoutFailed records a blocking failure notice shown after a checkout
// submission fails.
func (f *Feed) CheckoutFailed(detail string) {
	if detail == "" {
		detail = "unknown error"
	}
	f.push(Notification{
		Kind:     KindCheckoutFailed,
		Message:  fmt.Sprintf("Checkout failed: %s", detail),
		Blocking: true,
	})
}

// List returns a copy of the feed, newest last.
func (f *Feed) List() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// MarkRead flags one notification as read. Unknown IDs are ignored.
func (f *Feed) MarkRead(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flags every notification as read and reports how many changed.
func (f *Feed) MarkAllRead() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	changed := 0
	for i := range f.items {
		if !f.items[i].Read {
			f.items[i].Read = true
			changed++
		}
	}
	return changed
}

// Unread reports the number of unread notifications.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.items {
		if !n.Read {
			count++
		}
	}
	return count
}
