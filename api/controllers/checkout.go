package controllers

import (
	"net/http"

	"github.com/build0hq/storefront-session/api/middleware"
	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/internal/cart"
	"github.com/build0hq/storefront-session/internal/checkout"
	"github.com/build0hq/storefront-session/internal/session"
	"github.com/build0hq/storefront-session/pkg/logger"
)

// CheckoutSubmit submits the cart for payment. The snapshot is taken under
// the session lock; the network round trip runs outside it so cart reads
// stay responsive while the submission is in flight.
func CheckoutSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		var snapshot []cart.Item
		var submitter *checkout.Submitter
		sess.Do(func(s *session.Session) {
			snapshot = s.Cart.Snapshot()
			submitter = s.Submitter
		})

		result, err := submitter.Submit(r.Context(), snapshot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CheckoutStatus reports the submitter's state, including the redirect URL
// after a successful submission.
func CheckoutStatus(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		var submitter *checkout.Submitter
		sess.Do(func(s *session.Session) {
			submitter = s.Submitter
		})

		responses.WriteSuccess(w, submitter.Status())
	}
}
