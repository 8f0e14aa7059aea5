// Package events publishes domain events for other services to consume.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
)

// Event names, appended to the configured subject prefix.
const (
	UserRegistered  = "user.registered"
	AccountDeleted  = "account.deleted"
	ProfileUpserted = "profile.upserted"
	PostCreated     = "post.created"
	PostDeleted     = "post.deleted"
	PostLiked       = "post.liked"
	PostUnliked     = "post.unliked"
	PostCommented   = "post.commented"
	CommentDeleted  = "comment.deleted"
)

// Envelope is the JSON body of every published event.
type Envelope struct {
	Event      string      `json:"event"`
	ActorID    string      `json:"actor_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, event, actorID string, data interface{}) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, string, string, interface{}) error { return nil }

// NATSPublisher publishes events as JSON on core NATS subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// Connect dials NATS and returns a publisher using prefix for subjects.
func Connect(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("smapp"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Subject returns the full subject of an event.
func (p *NATSPublisher) Subject(event string) string {
	if p.prefix == "" {
		return event
	}
	return p.prefix + "." + event
}

// Publish implements Publisher. NATS publishes are fire-and-forget, so the
// context is only checked before sending.
func (p *NATSPublisher) Publish(ctx context.Context, event, actorID string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	payload, err := json.Marshal(Envelope{
		Event:      event,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(p.Subject(event), payload)
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Instrumented counts published and failed events per event name.
type Instrumented struct {
	next      Publisher
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewInstrumented wraps next and registers its counters on reg.
func NewInstrumented(next Publisher, reg prometheus.Registerer) *Instrumented {
	i := &Instrumented{
		next: next,
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smapp",
			Name:      "events_published_total",
			Help:      "Domain events published, by event name.",
		}, []string{"event"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smapp",
			Name:      "events_failed_total",
			Help:      "Domain events that failed to publish, by event name.",
		}, []string{"event"}),
	}
	reg.MustRegister(i.published, i.failed)
	return i
}

// Publish implements Publisher.
func (i *Instrumented) Publish(ctx context.Context, event, actorID string, data interface{}) error {
	if err := i.next.Publish(ctx, event, actorID, data); err != nil {
		i.failed.WithLabelValues(event).Inc()
		return err
	}
	i.published.WithLabelValues(event).Inc()
	return nil
}
