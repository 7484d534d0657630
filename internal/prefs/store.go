// Package prefs is the persisted key-value preference store. Every key is
// readable one-shot and observable as a stream: subscribers receive the
// current value immediately and every subsequent write after that.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference keys.
const (
	KeyAuthToken     = "auth_token"
	KeyUserEmail     = "user_email"
	KeyLoggedIn      = "is_logged_in"
	KeyThemeMode     = "theme_mode"
	KeyAccentColor   = "accent_color"
	KeyFontScale     = "font_scale"
	KeyNotifOffers   = "notif_offers"
	KeyNotifTracking = "notif_tracking"
	KeyNotifCart     = "notif_cart"
)

// Defaults applied when a key has never been written.
const (
	DefaultThemeMode   = "system"
	DefaultAccentColor = "#FF8B5C2A"
	DefaultFontScale   = "1.0"
)

// Preference is one row of the preferences table.
type Preference struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (Preference) TableName() string { return "preferences" }

// Store persists preferences and fans out writes to watchers.
type Store struct {
	db *gorm.DB

	mu     sync.Mutex
	subs   map[string]map[int]chan string
	nextID int
}

// NewStore builds a preference store bound to the provided DB.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("prefs store requires a db")
	}
	return &Store{
		db:   db,
		subs: make(map[string]map[int]chan string),
	}, nil
}

// Get reads a key one-shot. A missing key reads as the empty string.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var row Preference
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// GetBool reads a key as a boolean, returning fallback when unset or invalid.
func (s *Store) GetBool(ctx context.Context, key string, fallback bool) bool {
	raw, err := s.Get(ctx, key)
	if err != nil || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetOr reads a key, returning fallback when unset.
func (s *Store) GetOr(ctx context.Context, key, fallback string) string {
	raw, err := s.Get(ctx, key)
	if err != nil || raw == "" {
		return fallback
	}
	return raw
}

// Set upserts a key and notifies watchers of the new value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	row := Preference{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return err
	}
	s.broadcast(key, value)
	return nil
}

// SetBool stores a boolean value under the key.
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// Watch subscribes to a key. The returned channel emits the current value
// immediately and then every subsequent write. The cancel func must be called
// to release the subscription. Slow consumers drop intermediate values.
func (s *Store) Watch(key string) (<-chan string, func()) {
	ch := make(chan string, 16)

	// Read and register under the same lock broadcast takes, so a concurrent
	// Set is either visible in the initial read or delivered to the channel.
	s.mu.Lock()
	current, err := s.Get(context.Background(), key)
	if err != nil {
		current = ""
	}
	ch <- current
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]chan string)
	}
	id := s.nextID
	s.nextID++
	s.subs[key][id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if set, ok := s.subs[key]; ok {
			delete(set, id)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// ClearSession removes the login-scoped keys (token, email, logged-in flag)
// and notifies watchers. Theme and notification preferences are preserved.
func (s *Store) ClearSession(ctx context.Context) error {
	keys := []string{KeyAuthToken, KeyUserEmail, KeyLoggedIn}
	err := s.db.WithContext(ctx).
		Where("key IN ?", keys).
		Delete(&Preference{}).Error
	if err != nil {
		return err
	}
	for _, key := range keys {
		s.broadcast(key, "")
	}
	return nil
}

func (s *Store) broadcast(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[key] {
		select {
		case ch <- value:
		default:
		}
	}
}
