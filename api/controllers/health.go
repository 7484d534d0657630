package controllers

import (
	"context"
	"net/http"

	"github.com/legacyframe/storefront/api/responses"
	"github.com/legacyframe/storefront/pkg/config"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

const envHeader = "X-LegacyFrame-Env"

// Pinger is anything whose liveness we check before declaring readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the local mirror and, when configured, redis. A nil
// pinger is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		for _, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
