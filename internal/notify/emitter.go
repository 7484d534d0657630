package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/legacyframe/storefront/pkg/logger"
	"github.com/legacyframe/storefront/pkg/redis"
)

// Event kinds published on the notifications channel.
const (
	KindPurchaseSuccess = "purchase_success"
	KindPurchaseFailed  = "purchase_failed"
	KindSupportMessage  = "support_message"
)

// Event is the payload published for each storefront notification.
type Event struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Meta      map[string]string `json:"meta,omitempty"`
	EmittedAt time.Time         `json:"emitted_at"`
}

// Publisher is the subset of the redis client the emitter needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Emitter fans storefront notifications out on a redis channel. With no
// publisher configured it degrades to log-only delivery.
type Emitter struct {
	publisher Publisher
	channel   string
	logg      *logger.Logger
}

// NewEmitter builds the notification emitter. publisher may be nil.
func NewEmitter(publisher Publisher, logg *logger.Logger) *Emitter {
	return &Emitter{
		publisher: publisher,
		channel:   redis.Key("notifications"),
		logg:      logg,
	}
}

// Emit publishes one event. Delivery failures are logged, never surfaced;
// notifications must not fail the operation that produced them.
func (e *Emitter) Emit(ctx context.Context, kind, title, body string, meta map[string]string) {
	if e == nil {
		return
	}
	event := Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Body:      body,
		Meta:      meta,
		EmittedAt: time.Now().UTC(),
	}
	if e.publisher == nil {
		if e.logg != nil {
			e.logg.Info(e.logg.WithField(ctx, "kind", kind), "notification: "+title)
		}
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if e.logg != nil {
			e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "notification payload rejected")
		}
		return
	}
	if err := e.publisher.Publish(ctx, e.channel, payload); err != nil && e.logg != nil {
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "notification publish failed")
	}
}
