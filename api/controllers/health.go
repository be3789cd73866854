package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/pkg/config"
	"github.com/build0hq/storefront-session/pkg/logger"
	"github.com/build0hq/storefront-session/pkg/redis"
)

const readyProbeTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes optional dependencies. Redis is degradable; a failed
// ping is reported but does not fail the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		checks := map[string]string{}
		if redisP != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
			defer cancel()
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "degraded"
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "redis ping failed")
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
