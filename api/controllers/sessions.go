package controllers

import (
	"net/http"

	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/internal/session"
	"github.com/build0hq/storefront-session/pkg/logger"
)

type sessionCreatedResponse struct {
	SessionID string `json:"session_id"`
}

// CreateSession registers a fresh anonymous session and hands back its ID.
// The client sends it on every subsequent call in the X-Session-Id header.
func CreateSession(hub *session.Hub, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := hub.Create()
		responses.WriteSuccessStatus(w, http.StatusCreated, sessionCreatedResponse{
			SessionID: sess.ID.String(),
		})
	}
}
