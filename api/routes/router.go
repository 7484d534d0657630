package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/legacyframe/storefront/api/controllers"
	"github.com/legacyframe/storefront/api/middleware"
	"github.com/legacyframe/storefront/internal/cart"
	"github.com/legacyframe/storefront/internal/catalog"
	"github.com/legacyframe/storefront/internal/contact"
	"github.com/legacyframe/storefront/internal/orders"
	"github.com/legacyframe/storefront/internal/prefs"
	"github.com/legacyframe/storefront/internal/rates"
	"github.com/legacyframe/storefront/internal/session"
	"github.com/legacyframe/storefront/internal/users"
	"github.com/legacyframe/storefront/pkg/config"
	"github.com/legacyframe/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	dbPinger controllers.Pinger,
	redisPinger controllers.Pinger,
	prefStore *prefs.Store,
	sessionSync *session.Synchronizer,
	usersService users.Service,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
	contactService contact.Service,
	ratesService rates.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(usersService, logg))
		r.Post("/register", controllers.AuthRegister(usersService, logg))
		r.Post("/logout", controllers.AuthLogout(usersService, logg))
		r.Get("/profile", controllers.AuthProfile(usersService, logg))
		r.Put("/profile", controllers.AuthUpdateProfile(usersService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/session", controllers.SessionView(sessionSync, logg))
		r.Get("/rates/dollar", controllers.RatesDollar(ratesService, logg))
		r.Post("/contact", controllers.ContactSend(contactService, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.ProductsList(catalogService, logg))
			r.Get("/cuadros", controllers.CuadrosList(catalogService, logg))
			r.Post("/refresh", controllers.CatalogRefresh(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/", controllers.CartAdd(cartService, logg))
			r.Put("/{lineId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/{lineId}", controllers.CartRemove(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersHistory(ordersService, logg))
			r.Post("/checkout", controllers.Checkout(ordersService, cartService, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsFetch(prefStore, logg))
			r.Put("/", controllers.SettingsUpdate(prefStore, logg))
		})

		r.Route("/admin/products", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(sessionSync, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Post("/cuadros", controllers.AdminCreateCuadro(catalogService, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(catalogService, logg))
		})
	})

	return r
}
