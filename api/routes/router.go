package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/build0hq/storefront-session/api/controllers"
	"github.com/build0hq/storefront-session/api/middleware"
	"github.com/build0hq/storefront-session/internal/catalog"
	"github.com/build0hq/storefront-session/internal/session"
	"github.com/build0hq/storefront-session/pkg/config"
	"github.com/build0hq/storefront-session/pkg/logger"
	"github.com/build0hq/storefront-session/pkg/redis"
)

// NewRouter wires the full HTTP surface. redisP and idemStore may be nil;
// the idempotency guard then degrades to pass-through.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	resource *catalog.Resource,
	hub *session.Hub,
	redisP redis.Pinger,
	idemStore redis.IdempotencyStore,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", controllers.CreateSession(hub, logg))

		r.Route("/storefront", func(r chi.Router) {
			r.Get("/", controllers.StorefrontFetch(resource, logg))
			r.Post("/refresh", controllers.StorefrontRefresh(resource, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionContext(hub, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Get("/pending", controllers.CartPendingFetch(logg))
				r.Post("/pending", controllers.CartPendingAdjust(logg))
				r.Post("/items", controllers.CartCommit(resource, logg))
				r.Put("/items/{productId}", controllers.CartSetQuantity(logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
			})

			// Registered flat so the idempotency rule sees the exact
			// pattern "/api/v1/checkout".
			r.Post("/checkout", controllers.CheckoutSubmit(logg))
			r.Get("/checkout", controllers.CheckoutStatus(logg))

			r.Route("/view", func(r chi.Router) {
				r.Get("/", controllers.ViewFetch(logg))
				r.Post("/", controllers.ViewNavigate(logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(logg))
				r.Post("/{notificationId}/read", controllers.MarkNotificationRead(logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(logg))
			})
		})
	})

	return r
}
