package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/legacyframe/storefront/internal/cart"
	"github.com/legacyframe/storefront/internal/notify"
	"github.com/legacyframe/storefront/internal/prefs"
	"github.com/legacyframe/storefront/pkg/logger"
	"github.com/legacyframe/storefront/pkg/metrics"
)

// OrderRecord is the storefront projection of a past order. ItemsSummary is
// the rendered one-line-per-item text shown in the order history.
type OrderRecord struct {
	ID           int64     `json:"id"`
	Total        int       `json:"total"`
	ItemsSummary string    `json:"items_summary"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Service records purchases against the orders service and mirrors the
// buyer's order history.
type Service interface {
	History() []OrderRecord
	Refresh(ctx context.Context)
	Record(ctx context.Context, lines []cart.Line, total int) bool
}

type service struct {
	client  Client
	prefs   *prefs.Store
	cart    cart.Service
	emitter *notify.Emitter
	logg    *logger.Logger
	metrics *metrics.SyncMetrics

	mu      sync.RWMutex
	history []OrderRecord
}

// NewService builds the order recorder.
func NewService(client Client, store *prefs.Store, cartSvc cart.Service, emitter *notify.Emitter, logg *logger.Logger, m *metrics.SyncMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("orders client required")
	}
	if store == nil {
		return nil, fmt.Errorf("preference store required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{
		client:  client,
		prefs:   store,
		cart:    cartSvc,
		emitter: emitter,
		logg:    logg,
		metrics: m,
	}, nil
}

func (s *service) History() []OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]OrderRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Refresh replaces the history wholesale. A blank buyer email or a remote
// failure both resolve to an empty history, never a stale one.
func (s *service) Refresh(ctx context.Context) {
	email, err := s.prefs.Get(ctx, prefs.KeyUserEmail)
	if err != nil || strings.TrimSpace(email) == "" {
		s.replaceHistory(nil)
		return
	}

	started := time.Now()
	remotes, err := s.client.ListByEmail(ctx, email)
	s.metrics.ObserveDuration("orders", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("orders")
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "order history unavailable")
		}
		s.replaceHistory(nil)
		return
	}
	s.metrics.IncSuccess("orders")

	now := time.Now()
	mapped := make([]OrderRecord, 0, len(remotes))
	for _, remote := range remotes {
		mapped = append(mapped, OrderRecord{
			ID:           remote.ID,
			Total:        int(remote.Total),
			ItemsSummary: summarizeDetails(remote.Detalles),
			FetchedAt:    now,
		})
	}
	s.replaceHistory(mapped)
}

// Record submits the current cart as a new order. With no buyer email the
// call is a silent no-op that never touches the network. On success the cart
// is cleared and the history refreshed; on failure the cart stays intact.
func (s *service) Record(ctx context.Context, lines []cart.Line, total int) bool {
	email, err := s.prefs.Get(ctx, prefs.KeyUserEmail)
	if err != nil || strings.TrimSpace(email) == "" {
		return false
	}

	items := make([]OrderDetail, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderDetail{
			ProductoID:     line.RefID,
			NombreProducto: line.Name,
			Cantidad:       line.Quantity,
			PrecioUnitario: float64(line.UnitPrice),
		})
	}

	if err := s.client.Submit(ctx, email, SubmitOrderRequest{Items: items}); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "order submission failed", err)
		}
		s.emitter.Emit(ctx, notify.KindPurchaseFailed, "Error en la compra",
			"No se pudo registrar la compra, el carrito se mantiene", nil)
		return false
	}

	if err := s.cart.Clear(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart clear after purchase failed")
	}
	s.Refresh(ctx)
	s.emitter.Emit(ctx, notify.KindPurchaseSuccess, "Compra realizada",
		"Tu compra fue registrada", map[string]string{"total": strconv.Itoa(total)})
	return true
}

func (s *service) replaceHistory(records []OrderRecord) {
	s.mu.Lock()
	s.history = records
	s.mu.Unlock()
}

// summarizeDetails renders "- name xqty" lines, one per detail.
func summarizeDetails(details []RemoteOrderDetail) string {
	if len(details) == 0 {
		return "Sin detalles"
	}
	parts := make([]string, 0, len(details))
	for _, detail := range details {
		parts = append(parts, fmt.Sprintf("- %s x%d", detail.NombreProducto, detail.Cantidad))
	}
	return strings.Join(parts, "\n")
}
