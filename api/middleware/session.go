package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/internal/session"
	pkgerrors "github.com/build0hq/storefront-session/pkg/errors"
	"github.com/build0hq/storefront-session/pkg/logger"
)

// SessionIDHeader carries the shopper's session identifier on every
// session-scoped call.
const SessionIDHeader = "X-Session-Id"

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the session resolved by SessionContext.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if sess, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return sess
	}
	return nil
}

// WithSession injects a session into the context. Exposed for handler tests.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

// SessionContext resolves the session named by the X-Session-Id header and
// injects it into the request context. Requests without a live session are
// rejected before any handler runs.
func SessionContext(hub *session.Hub, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(SessionIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Session-Id header required"))
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Session-Id must be a valid uuid"))
				return
			}

			sess, ok := hub.Get(id)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "session not found"))
				return
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
