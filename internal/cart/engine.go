package cart

import (
	"github.com/build0hq/storefront-session/internal/catalog"
	"github.com/shopspring/decimal"
)

// Item is one cart line: a product plus a positive quantity. The cart holds
// at most one Item per product identifier.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Notifier receives the user-facing confirmations emitted by cart mutations.
type Notifier interface {
	ItemAdded(name string, quantity int)
	ItemRemoved(name string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) ItemAdded(string, int) {}
func (NopNotifier) ItemRemoved(string)    {}

// Engine owns the session's cart and the per-product pending quantities
// staged on product cards. It is not safe for concurrent use; the owning
// session serializes access.
type Engine struct {
	items    []Item
	pending  map[string]int
	notifier Notifier
}

func NewEngine(notifier Notifier) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		pending:  make(map[string]int),
		notifier: notifier,
	}
}

// AdjustPending adds delta to the pending quantity for the product, clamped
// at a minimum of 0. Always succeeds.
func (e *Engine) AdjustPending(productID string, delta int) int {
	next := e.pending[productID] + delta
	if next < 0 {
		next = 0
	}
	e.pending[productID] = next
	return next
}

// PendingQuantity returns the staged quantity for the product, defaulting to
// 0 on a missing key.
func (e *Engine) PendingQuantity(productID string) int {
	return e.pending[productID]
}

// Pending returns a copy of the pending-quantity map.
func (e *Engine) Pending() map[string]int {
	out := make(map[string]int, len(e.pending))
	for id, qty := range e.pending {
		out[id] = qty
	}
	return out
}

// Commit merges the product's pending quantity (or 1 when none is staged)
// into the cart and returns the quantity added.
func (e *Engine) Commit(product catalog.Product) int {
	return e.CommitQuantity(product, e.pending[product.ID])
}

// CommitQuantity merges an explicit quantity into the cart, treating
// anything below 1 as a single unit, and returns the quantity added. An
// existing line for the same product grows by the quantity; otherwise a new
// line is appended, so the most recently added product sits last. The
// product's pending quantity resets to 0 afterwards.
func (e *Engine) CommitQuantity(product catalog.Product, quantity int) int {
	if quantity < 1 {
		quantity = 1
	}

	merged := false
	for i := range e.items {
		if e.items[i].Product.ID == product.ID {
			e.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		e.items = append(e.items, Item{Product: product, Quantity: quantity})
	}

	e.pending[product.ID] = 0
	e.notifier.ItemAdded(product.Name, quantity)
	return quantity
}

// SetItemQuantity replaces the quantity on an existing line in place. A
// quantity of 0 or less removes the line. Unknown identifiers are ignored.
func (e *Engine) SetItemQuantity(productID string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(productID)
		return
	}
	for i := range e.items {
		if e.items[i].Product.ID == productID {
			e.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line for the product if present. Removal is
// idempotent: absent identifiers are a silent no-op.
func (e *Engine) RemoveItem(productID string) {
	for i := range e.items {
		if e.items[i].Product.ID == productID {
			name := e.items[i].Product.Name
			e.items = append(e.items[:i], e.items[i+1:]...)
			e.notifier.ItemRemoved(name)
			return
		}
	}
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Snapshot is the point-in-time copy handed to the checkout path. Later cart
// mutations do not affect it.
func (e *Engine) Snapshot() []Item {
	return e.Items()
}

// Total sums price times quantity across all lines. The sum is exact; any
// rounding happens once at display time, never per line.
func (e *Engine) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount sums the quantities across all lines; it is 0 exactly when the
// cart is empty.
func (e *Engine) ItemCount() int {
	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}
