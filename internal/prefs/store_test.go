package prefs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:prefs_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&Preference{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := NewStore(conn)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestGetMissingKeyReadsEmpty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Get(context.Background(), KeyAuthToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value for missing key, got %q", got)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyUserEmail, "admin@legacyframe.cl"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, KeyUserEmail, "buyer@legacyframe.cl"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, err := store.Get(ctx, KeyUserEmail)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "buyer@legacyframe.cl" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestWatchEmitsCurrentThenWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyAuthToken, "initial"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ch, cancel := store.Watch(KeyAuthToken)
	defer cancel()

	if got := recvOrTimeout(t, ch); got != "initial" {
		t.Fatalf("expected current value on subscribe, got %q", got)
	}

	if err := store.Set(ctx, KeyAuthToken, "next"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := recvOrTimeout(t, ch); got != "next" {
		t.Fatalf("expected write to be observed, got %q", got)
	}
}

func TestWatchCancelStopsDelivery(t *testing.T) {
	store := newTestStore(t)
	ch, cancel := store.Watch(KeyThemeMode)
	recvOrTimeout(t, ch)
	cancel()

	if err := store.Set(context.Background(), KeyThemeMode, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	select {
	case v := <-ch:
		t.Fatalf("cancelled watcher received %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClearSessionPreservesTheme(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(store.Set(ctx, KeyAuthToken, "tok"))
	must(store.Set(ctx, KeyUserEmail, "u@x.cl"))
	must(store.SetBool(ctx, KeyLoggedIn, true))
	must(store.Set(ctx, KeyThemeMode, "dark"))

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	for _, key := range []string{KeyAuthToken, KeyUserEmail, KeyLoggedIn} {
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get %s: %v", key, err)
		}
		if got != "" {
			t.Fatalf("expected %s cleared, got %q", key, got)
		}
	}
	if got, _ := store.Get(ctx, KeyThemeMode); got != "dark" {
		t.Fatalf("theme should survive logout, got %q", got)
	}
}

func TestGetBoolFallback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if got := store.GetBool(ctx, KeyNotifOffers, true); !got {
		t.Fatal("unset bool should use fallback")
	}
	if err := store.SetBool(ctx, KeyNotifOffers, false); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if got := store.GetBool(ctx, KeyNotifOffers, true); got {
		t.Fatal("stored false should win over fallback")
	}
}

func TestWatchConcurrentWriteNeverMissed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		want := fmt.Sprintf("tok-%d", i)
		done := make(chan struct{})
		go func() {
			if err := store.Set(ctx, KeyAuthToken, want); err != nil {
				t.Errorf("Set: %v", err)
			}
			close(done)
		}()
		ch, cancel := store.Watch(KeyAuthToken)
		<-done

		saw := false
		deadline := time.After(time.Second)
	drain:
		for {
			select {
			case v := <-ch:
				if v == want {
					saw = true
					break drain
				}
			case <-deadline:
				break drain
			}
		}
		cancel()
		if !saw {
			t.Fatalf("iteration %d: write %q never reached the watcher", i, want)
		}
	}
}

func recvOrTimeout(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for emission")
		return ""
	}
}
