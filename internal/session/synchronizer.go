package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/legacyframe/storefront/internal/catalog"
	"github.com/legacyframe/storefront/internal/orders"
	"github.com/legacyframe/storefront/internal/prefs"
	"github.com/legacyframe/storefront/internal/rates"
	"github.com/legacyframe/storefront/pkg/creds"
	"github.com/legacyframe/storefront/pkg/logger"
)

// View is the derived session state. It is recomputed whenever any of its
// preference inputs changes.
type View struct {
	LoggedIn bool   `json:"logged_in"`
	IsAdmin  bool   `json:"is_admin"`
	Email    string `json:"email"`
}

// IsAdminEmail is the admin heuristic: any address containing "admin",
// case-insensitive, gets the admin surface.
func IsAdminEmail(email string) bool {
	return strings.Contains(strings.ToLower(email), "admin")
}

// Synchronizer keeps the session view current and drives remote refreshes off
// the stored auth token.
type Synchronizer struct {
	prefs   *prefs.Store
	cell    *creds.Cell
	catalog catalog.Service
	orders  orders.Service
	rates   rates.Service
	logg    *logger.Logger

	mu        sync.RWMutex
	view      View
	lastToken string
	subs      map[int]chan View
	nextSub   int
}

// NewSynchronizer wires the session view over its inputs.
func NewSynchronizer(store *prefs.Store, cell *creds.Cell, catalogSvc catalog.Service, ordersSvc orders.Service, ratesSvc rates.Service, logg *logger.Logger) (*Synchronizer, error) {
	if store == nil {
		return nil, fmt.Errorf("preference store required")
	}
	if cell == nil {
		return nil, fmt.Errorf("credential cell required")
	}
	if catalogSvc == nil || ordersSvc == nil || ratesSvc == nil {
		return nil, fmt.Errorf("catalog, orders and rates services required")
	}
	return &Synchronizer{
		prefs:   store,
		cell:    cell,
		catalog: catalogSvc,
		orders:  ordersSvc,
		rates:   ratesSvc,
		logg:    logg,
		subs:    make(map[int]chan View),
	}, nil
}

// View returns the current session view.
func (s *Synchronizer) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Watch subscribes to session view changes. The current view is delivered
// first; the cancel func must be called to release the subscription.
func (s *Synchronizer) Watch() (<-chan View, func()) {
	ch := make(chan View, 8)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.view
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Run seeds the view, performs the cold-start fetches and then follows the
// preference streams until ctx is cancelled.
func (s *Synchronizer) Run(ctx context.Context) {
	email, _ := s.prefs.Get(ctx, prefs.KeyUserEmail)
	loggedIn := s.prefs.GetBool(ctx, prefs.KeyLoggedIn, false)

	s.mu.Lock()
	s.view = View{LoggedIn: loggedIn, IsAdmin: IsAdminEmail(email), Email: email}
	s.mu.Unlock()

	// Cold-start fetches run independently; each one swallows its own
	// failures. A stored token triggers a second pass through the token
	// watch, which is accepted as benign.
	go s.catalog.Refresh(ctx)
	go s.rates.Refresh(ctx)
	go s.orders.Refresh(ctx)

	go s.followBool(ctx, prefs.KeyLoggedIn, s.observeLoggedIn)
	go s.follow(ctx, prefs.KeyUserEmail, s.observeEmail)
	go s.follow(ctx, prefs.KeyAuthToken, func(value string) { s.observeToken(ctx, value) })
}

func (s *Synchronizer) follow(ctx context.Context, key string, handle func(string)) {
	ch, cancel := s.prefs.Watch(key)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case value, ok := <-ch:
			if !ok {
				return
			}
			handle(value)
		}
	}
}

func (s *Synchronizer) followBool(ctx context.Context, key string, handle func(bool)) {
	s.follow(ctx, key, func(value string) {
		handle(value == "true")
	})
}

func (s *Synchronizer) observeLoggedIn(loggedIn bool) {
	s.mu.Lock()
	s.view.LoggedIn = loggedIn
	view := s.view
	s.mu.Unlock()
	s.broadcast(view)
}

func (s *Synchronizer) observeEmail(email string) {
	s.mu.Lock()
	s.view.Email = email
	s.view.IsAdmin = IsAdminEmail(email)
	view := s.view
	s.mu.Unlock()
	s.broadcast(view)
}

// observeToken publishes every emission to the credential cell and, when the
// token is non-blank and differs from the previous one, dispatches the
// catalog and order-history refreshes.
func (s *Synchronizer) observeToken(ctx context.Context, token string) {
	s.cell.Set(token)

	s.mu.Lock()
	changed := token != "" && token != s.lastToken
	s.lastToken = token
	s.mu.Unlock()

	if !changed {
		return
	}
	if s.logg != nil {
		s.logg.Info(ctx, "session token rotated, refreshing remote mirrors")
	}
	s.catalog.Refresh(ctx)
	s.orders.Refresh(ctx)
}

func (s *Synchronizer) broadcast(view View) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- view:
		default:
		}
	}
}
