package controllers

import (
	"net/http"

	"github.com/legacyframe/storefront/api/responses"
	"github.com/legacyframe/storefront/internal/session"
	"github.com/legacyframe/storefront/pkg/logger"
)

// SessionView serves the derived session state.
func SessionView(sync *session.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sync.View())
	}
}
