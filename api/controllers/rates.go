package controllers

import (
	"net/http"

	"github.com/legacyframe/storefront/api/responses"
	"github.com/legacyframe/storefront/internal/rates"
	"github.com/legacyframe/storefront/pkg/logger"
)

type dollarResponse struct {
	Value     *float64 `json:"value"`
	Available bool     `json:"available"`
}

// RatesDollar serves the last fetched USD/CLP value; a nil value means no
// fetch has succeeded since boot.
func RatesDollar(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := svc.Dollar()
		responses.WriteSuccess(w, dollarResponse{Value: value, Available: value != nil})
	}
}
