package controllers

import (
	"net/http"

	"github.com/legacyframe/storefront/api/responses"
	"github.com/legacyframe/storefront/api/validators"
	"github.com/legacyframe/storefront/internal/contact"
	"github.com/legacyframe/storefront/pkg/logger"
)

type contactRequest struct {
	Nombre  string `json:"nombre" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Mensaje string `json:"mensaje" validate:"required"`
}

func ContactSend(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Send(r.Context(), payload.Nombre, payload.Email, payload.Mensaje); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "sent"})
	}
}
