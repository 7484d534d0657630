package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/legacyframe/storefront/api/routes"
	"github.com/legacyframe/storefront/internal/cart"
	"github.com/legacyframe/storefront/internal/catalog"
	"github.com/legacyframe/storefront/internal/contact"
	"github.com/legacyframe/storefront/internal/notify"
	"github.com/legacyframe/storefront/internal/orders"
	"github.com/legacyframe/storefront/internal/prefs"
	"github.com/legacyframe/storefront/internal/rates"
	"github.com/legacyframe/storefront/internal/session"
	"github.com/legacyframe/storefront/internal/users"
	"github.com/legacyframe/storefront/pkg/config"
	"github.com/legacyframe/storefront/pkg/creds"
	"github.com/legacyframe/storefront/pkg/db"
	"github.com/legacyframe/storefront/pkg/logger"
	"github.com/legacyframe/storefront/pkg/metrics"
	"github.com/legacyframe/storefront/pkg/migrate"
	"github.com/legacyframe/storefront/pkg/redis"
	"github.com/legacyframe/storefront/pkg/rest"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap local mirror", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing local mirror", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, notifications are log-only")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	syncMetrics := metrics.NewSyncMetrics(registry)

	cell := creds.NewCell()

	prefStore, err := prefs.NewStore(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to open preference store", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	authRest, err := rest.NewClient(cfg.Remotes.AuthBaseURL, cfg.Remotes.Timeout, cell, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth client", err)
		os.Exit(1)
	}
	catalogRest, err := rest.NewClient(cfg.Remotes.CatalogBaseURL, cfg.Remotes.Timeout, cell, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}
	ordersRest, err := rest.NewClient(cfg.Remotes.OrdersBaseURL, cfg.Remotes.Timeout, cell, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders client", err)
		os.Exit(1)
	}
	contactRest, err := rest.NewClient(cfg.Remotes.ContactBaseURL, cfg.Remotes.Timeout, cell, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact client", err)
		os.Exit(1)
	}
	ratesRest, err := rest.NewClient(cfg.Rates.BaseURL, cfg.Rates.Timeout, cell, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create rates client", err)
		os.Exit(1)
	}

	assetBase := cfg.Remotes.AssetBaseURL
	if assetBase == "" {
		assetBase = cfg.Remotes.CatalogBaseURL
	}

	var emitterPublisher notify.Publisher
	if redisClient != nil {
		emitterPublisher = redisClient
	}
	emitter := notify.NewEmitter(emitterPublisher, logg)

	catalogService, err := catalog.NewService(catalog.NewClient(catalogRest), assetBase, logg, syncMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	ratesService := rates.NewService(rates.NewClient(ratesRest), logg, syncMetrics)
	ordersService, err := orders.NewService(orders.NewClient(ordersRest), prefStore, cartService, emitter, logg, syncMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	contactService, err := contact.NewService(contact.NewClient(contactRest), emitter, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(users.NewClient(authRest), prefStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	sessionSync, err := session.NewSynchronizer(prefStore, cell, catalogService, ordersService, ratesService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session synchronizer", err)
		os.Exit(1)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessionSync.Run(runCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	var redisPinger pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, registry,
			dbClient, redisPinger,
			prefStore, sessionSync,
			usersService, catalogService, cartService,
			ordersService, contactService, ratesService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}
