package redis

import (
	"testing"
	"time"

	"github.com/legacyframe/storefront/pkg/config"
)

func TestOptionsFromConfigPrefersURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://:secret@localhost:6380/2",
		Address:  "ignored:6379",
		PoolSize: 4,
	})
	if err != nil {
		t.Fatalf("optionsFromConfig returned error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("expected addr from URL, got %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("expected db 2 from URL, got %d", opts.DB)
	}
	if opts.PoolSize != 4 {
		t.Fatalf("expected pool size override, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when no url or address provided")
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:     "localhost:6379",
		Password:    "pw",
		DB:          1,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("optionsFromConfig returned error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.Password != "pw" || opts.DB != 1 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.DialTimeout != 2*time.Second {
		t.Fatalf("expected dial timeout to apply, got %v", opts.DialTimeout)
	}
}

func TestKeyNamespacing(t *testing.T) {
	if got := Key("notifications"); got != "lf:notifications" {
		t.Fatalf("unexpected key %q", got)
	}
}
