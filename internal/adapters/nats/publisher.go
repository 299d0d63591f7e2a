package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/pkg/metrics"
)

const (
	// StreamName is the JetStream stream holding animal events.
	StreamName = "ANIMALES"
	// SubjectPrefix prefixes every animal event subject.
	SubjectPrefix = "patitas.animales."
	// SubjectAll matches every animal event.
	SubjectAll = SubjectPrefix + ">"
)

// Subject returns the subject an event of eventType is published on.
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("patitas-api"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectAll},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist; try update
		if _, err := js.UpdateStream(cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishAnimalEvent publishes event as JSON on patitas.animales.<type>.
func (p *Publisher) PublishAnimalEvent(ctx context.Context, event *domain.AnimalEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(Subject(event.Type), data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	metrics.AnimalEvents.WithLabelValues(event.Type).Inc()
	return nil
}

// Conn exposes the underlying connection for subscribers such as the
// WebSocket relay.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
