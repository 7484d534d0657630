package controllers

import (
	"net/http"

	"github.com/legacyframe/storefront/api/responses"
	"github.com/legacyframe/storefront/api/validators"
	"github.com/legacyframe/storefront/internal/prefs"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

type settingsResponse struct {
	ThemeMode     string `json:"theme_mode"`
	AccentColor   string `json:"accent_color"`
	FontScale     string `json:"font_scale"`
	NotifOffers   bool   `json:"notif_offers"`
	NotifTracking bool   `json:"notif_tracking"`
	NotifCart     bool   `json:"notif_cart"`
}

func SettingsFetch(store *prefs.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		responses.WriteSuccess(w, settingsResponse{
			ThemeMode:     store.GetOr(ctx, prefs.KeyThemeMode, prefs.DefaultThemeMode),
			AccentColor:   store.GetOr(ctx, prefs.KeyAccentColor, prefs.DefaultAccentColor),
			FontScale:     store.GetOr(ctx, prefs.KeyFontScale, prefs.DefaultFontScale),
			NotifOffers:   store.GetBool(ctx, prefs.KeyNotifOffers, true),
			NotifTracking: store.GetBool(ctx, prefs.KeyNotifTracking, true),
			NotifCart:     store.GetBool(ctx, prefs.KeyNotifCart, true),
		})
	}
}

type settingsUpdateRequest struct {
	ThemeMode     *string `json:"theme_mode,omitempty" validate:"omitempty,oneof=system light dark"`
	AccentColor   *string `json:"accent_color,omitempty"`
	FontScale     *string `json:"font_scale,omitempty"`
	NotifOffers   *bool   `json:"notif_offers,omitempty"`
	NotifTracking *bool   `json:"notif_tracking,omitempty"`
	NotifCart     *bool   `json:"notif_cart,omitempty"`
}

// SettingsUpdate writes only the fields present in the payload.
func SettingsUpdate(store *prefs.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload settingsUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		writes := map[string]*string{
			prefs.KeyThemeMode:   payload.ThemeMode,
			prefs.KeyAccentColor: payload.AccentColor,
			prefs.KeyFontScale:   payload.FontScale,
		}
		for key, value := range writes {
			if value == nil {
				continue
			}
			if err := store.Set(ctx, key, *value); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "preference write failed"))
				return
			}
		}
		boolWrites := map[string]*bool{
			prefs.KeyNotifOffers:   payload.NotifOffers,
			prefs.KeyNotifTracking: payload.NotifTracking,
			prefs.KeyNotifCart:     payload.NotifCart,
		}
		for key, value := range boolWrites {
			if value == nil {
				continue
			}
			if err := store.SetBool(ctx, key, *value); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "preference write failed"))
				return
			}
		}

		SettingsFetch(store, logg)(w, r)
	}
}
