package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/build0hq/storefront-session/internal/cart"
	pkgerrors "github.com/build0hq/storefront-session/pkg/errors"
	"github.com/build0hq/storefront-session/pkg/logger"
	"github.com/build0hq/storefront-session/pkg/metrics"
)

// State is the submitter's position in its lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
)

// Refusal reasons reported when the guard declines to start a submission.
const (
	RefusalInFlight  = "in_flight"
	RefusalEmptyCart = "empty_cart"
	RefusalCompleted = "completed"
)

// Result is the externally observable submitter state. RedirectURL is set
// only after a success; LastError only after the most recent failure.
type Result struct {
	State       State  `json:"state"`
	RedirectURL string `json:"redirect_url,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

// Notifier surfaces checkout failures to the user.
type Notifier interface {
	CheckoutFailed(detail string)
}

type nopNotifier struct{}

func (nopNotifier) CheckoutFailed(string) {}

type poster interface {
	Submit(ctx context.Context, storefrontID string, request Request) (*Response, error)
}

// Submitter runs at most one checkout submission at a time for a session.
// A failed submission returns the submitter to idle with the cart untouched
// so the shopper can retry; a successful one is terminal.
type Submitter struct {
	client       poster
	storefrontID string
	notifier     Notifier
	logg         *logger.Logger
	metrics      *metrics.CheckoutMetrics

	mu          sync.Mutex
	state       State
	redirectURL string
	lastErr     error
}

func NewSubmitter(client poster, storefrontID string, notifier Notifier, logg *logger.Logger, m *metrics.CheckoutMetrics) *Submitter {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Submitter{
		client:       client,
		storefrontID: storefrontID,
		notifier:     notifier,
		logg:         logg,
		metrics:      m,
		state:        StateIdle,
	}
}

// Status returns the current observable state.
func (s *Submitter) Status() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultLocked()
}

func (s *Submitter) resultLocked() Result {
	res := Result{State: s.state, RedirectURL: s.redirectURL}
	if s.lastErr != nil {
		res.LastError = failureDetail(s.lastErr)
	}
	return res
}

// CanSubmit reports whether a submission would start, and the refusal reason
// when it would not. An empty cart and an in-flight submission are disabled
// states, not errors.
func (s *Submitter) CanSubmit(snapshot []cart.Item) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state == StatePending:
		return false, RefusalInFlight
	case s.state == StateSucceeded:
		return false, RefusalCompleted
	case len(snapshot) == 0:
		return false, RefusalEmptyCart
	}
	return true, ""
}

// Submit builds the request from the snapshot taken at call time and
// dispatches it. The snapshot is fixed: cart mutations during the round trip
// cannot alter the request already sent.
func (s *Submitter) Submit(ctx context.Context, snapshot []cart.Item) (Result, error) {
	s.mu.Lock()
	switch {
	case s.state == StatePending:
		s.mu.Unlock()
		s.metrics.IncRefused(s.storefrontID, RefusalInFlight)
		return Result{State: StatePending}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout submission already in flight")
	case s.state == StateSucceeded:
		res := s.resultLocked()
		s.mu.Unlock()
		s.metrics.IncRefused(s.storefrontID, RefusalCompleted)
		return res, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already completed")
	case len(snapshot) == 0:
		res := s.resultLocked()
		s.mu.Unlock()
		s.metrics.IncRefused(s.storefrontID, RefusalEmptyCart)
		return res, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	s.state = StatePending
	s.mu.Unlock()

	request := BuildRequest(snapshot)

	start := time.Now()
	resp, err := s.client.Submit(ctx, s.storefrontID, request)
	s.metrics.ObserveDuration(s.storefrontID, time.Since(start))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Back to idle: the cart was never touched, the shopper may retry.
		s.state = StateIdle
		s.lastErr = err
		s.metrics.IncFailure(s.storefrontID)
		if s.logg != nil {
			s.logg.Error(ctx, "checkout submission failed", err)
		}
		s.notifier.CheckoutFailed(failureDetail(err))
		return s.resultLocked(), err
	}

	// Terminal: the browsing context navigates away to the checkout URL.
	s.state = StateSucceeded
	s.redirectURL = resp.CheckoutURL
	s.lastErr = nil
	s.metrics.IncSuccess(s.storefrontID)
	if s.logg != nil {
		lctx := s.logg.WithField(ctx, "checkout_url", resp.CheckoutURL)
		s.logg.Info(lctx, "checkout submission succeeded")
	}
	return s.resultLocked(), nil
}

// failureDetail extracts the endpoint's error detail when available, falling
// back to the error text.
func failureDetail(err error) string {
	if err == nil {
		return ""
	}
	if typed := pkgerrors.As(err); typed != nil {
		if details, ok := typed.Details().(map[string]any); ok {
			if body, ok := details["body"].(string); ok && body != "" {
				return body
			}
		}
		if msg := typed.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
