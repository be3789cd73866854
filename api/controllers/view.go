package controllers

import (
	"net/http"

	"github.com/build0hq/storefront-session/api/middleware"
	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/api/validators"
	"github.com/build0hq/storefront-session/internal/nav"
	"github.com/build0hq/storefront-session/internal/session"
	"github.com/build0hq/storefront-session/pkg/logger"
)

// ViewFetch returns the page the session is currently on.
func ViewFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		var view nav.View
		sess.Do(func(s *session.Session) {
			view = s.Nav.CurrentView()
		})
		responses.WriteSuccess(w, view)
	}
}

type navigateRequest struct {
	Target string `json:"target" validate:"required"`
}

// ViewNavigate moves the session to a named page. An unknown target resolves
// to the not-found view and leaves the current page unchanged.
func ViewNavigate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body navigateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		var view nav.View
		sess.Do(func(s *session.Session) {
			view = s.Nav.GoToPage(body.Target)
		})

		responses.WriteSuccess(w, view)
	}
}
