package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/build0hq/storefront-session/api/middleware"
	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/internal/notifications"
	"github.com/build0hq/storefront-session/internal/session"
	pkgerrors "github.com/build0hq/storefront-session/pkg/errors"
	"github.com/build0hq/storefront-session/pkg/logger"
)

type notificationsResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
	Unread        int                          `json:"unread"`
}

// ListNotifications returns the session's feed, newest first.
func ListNotifications(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		var resp notificationsResponse
		sess.Do(func(s *session.Session) {
			resp = notificationsResponse{
				Notifications: s.Feed.List(),
				Unread:        s.Feed.Unread(),
			}
		})
		responses.WriteSuccess(w, resp)
	}
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "notificationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "notification id must be a valid uuid"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		var found bool
		sess.Do(func(s *session.Session) {
			found = s.Feed.MarkRead(id)
		})

		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "read"})
	}
}

// MarkAllNotificationsRead marks the whole feed as read.
func MarkAllNotificationsRead(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		var marked int
		sess.Do(func(s *session.Session) {
			marked = s.Feed.MarkAllRead()
		})
		responses.WriteSuccess(w, map[string]int{"marked": marked})
	}
}
