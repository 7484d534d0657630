package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment variable names referenced from tests and error messages.
const (
	EnvAppEnv         = "LEGACYFRAME_APP_ENV"
	EnvPort           = "LEGACYFRAME_APP_PORT"
	EnvDBDSN          = "LEGACYFRAME_DB_DSN"
	EnvRedisURL       = "LEGACYFRAME_REDIS_URL"
	EnvAuthBaseURL    = "LEGACYFRAME_AUTH_BASE_URL"
	EnvCatalogBaseURL = "LEGACYFRAME_CATALOG_BASE_URL"
	EnvOrdersBaseURL  = "LEGACYFRAME_ORDERS_BASE_URL"
	EnvContactBaseURL = "LEGACYFRAME_CONTACT_BASE_URL"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Remotes      RemotesConfig
	Rates        RatesConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEGACYFRAME_APP_ENV" required:"true"`
	Port         string `envconfig:"LEGACYFRAME_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LEGACYFRAME_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEGACYFRAME_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig describes the local mirror store. The mirror is a device-local
// cache, so sqlite is the default driver; postgres is supported for shared
// deployments of the gateway.
type DBConfig struct {
	Driver string `envconfig:"LEGACYFRAME_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"LEGACYFRAME_DB_DSN" default:"legacyframe.db"`

	MaxOpenConns    int           `envconfig:"LEGACYFRAME_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LEGACYFRAME_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LEGACYFRAME_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEGACYFRAME_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) validate() error {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	if driver != DriverSQLite && driver != DriverPostgres {
		return fmt.Errorf("unsupported db driver %q (expected %s or %s)", db.Driver, DriverSQLite, DriverPostgres)
	}
	db.Driver = driver
	if db.DSN == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LEGACYFRAME_REDIS_URL"`
	Address      string        `envconfig:"LEGACYFRAME_REDIS_ADDR"`
	Password     string        `envconfig:"LEGACYFRAME_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEGACYFRAME_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEGACYFRAME_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEGACYFRAME_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEGACYFRAME_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEGACYFRAME_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEGACYFRAME_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured at all. The gateway
// degrades to log-only notifications without one.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// RemotesConfig holds the base URLs of the storefront microservices.
type RemotesConfig struct {
	AuthBaseURL    string        `envconfig:"LEGACYFRAME_AUTH_BASE_URL" required:"true"`
	CatalogBaseURL string        `envconfig:"LEGACYFRAME_CATALOG_BASE_URL" required:"true"`
	OrdersBaseURL  string        `envconfig:"LEGACYFRAME_ORDERS_BASE_URL" required:"true"`
	ContactBaseURL string        `envconfig:"LEGACYFRAME_CONTACT_BASE_URL" required:"true"`
	AssetBaseURL   string        `envconfig:"LEGACYFRAME_ASSET_BASE_URL"`
	Timeout        time.Duration `envconfig:"LEGACYFRAME_REMOTE_TIMEOUT" default:"15s"`
}

// RatesConfig points at the economic indicator API used for the dollar value.
type RatesConfig struct {
	BaseURL string        `envconfig:"LEGACYFRAME_RATES_BASE_URL" default:"https://mindicador.cl"`
	Timeout time.Duration `envconfig:"LEGACYFRAME_RATES_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LEGACYFRAME_AUTO_MIGRATE" default:"false"`
}
