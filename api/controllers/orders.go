package controllers

import (
	"net/http"

	"github.com/legacyframe/storefront/api/responses"
	"github.com/legacyframe/storefront/internal/cart"
	"github.com/legacyframe/storefront/internal/orders"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

func OrdersHistory(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Refresh(r.Context())
		responses.WriteSuccess(w, svc.History())
	}
}

type checkoutResponse struct {
	Recorded bool `json:"recorded"`
	Total    int  `json:"total"`
}

// Checkout submits the current cart as an order. An empty cart and a missing
// session are both rejected before any network call.
func Checkout(ordersSvc orders.Service, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := cartSvc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(snapshot.Lines) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		if !ordersSvc.Record(r.Context(), snapshot.Lines, snapshot.Total) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "purchase could not be recorded"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{Recorded: true, Total: snapshot.Total})
	}
}
