// Package events publishes page-submission events to Kafka. The event stream
// is the durable audit trail of what was asked and answered; consumers are
// out of process.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Topic is the Kafka topic page submission events are produced to.
const Topic = "caseflow.page.submitted"

// PageSubmitted records one successful page persist.
type PageSubmitted struct {
	EventID     string    `json:"event_id"`
	DocumentID  string    `json:"document_id"`
	JourneyKind string    `json:"journey_kind"`
	TaskSlug    string    `json:"task_slug"`
	PageSlug    string    `json:"page_slug"`
	ActorID     string    `json:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher produces submission events. A nil *Publisher is a no-op so the
// engine does not need to branch on whether Kafka is configured.
type Publisher struct {
	client *kgo.Client
	logger *slog.Logger
}

// New connects a producer to the given brokers. Returns nil when no brokers
// are configured.
func New(brokers []string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: client, logger: logger}, nil
}

// PageSubmitted publishes the event asynchronously. Delivery failures are
// logged, never surfaced: the persisted document is the source of truth and a
// lost event must not fail the submission.
func (p *Publisher) PageSubmitted(ctx context.Context, ev PageSubmitted) {
	if p == nil {
		return
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	value, err := json.Marshal(ev)
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal page submitted event", "error", err)
		return
	}
	record := &kgo.Record{Key: []byte(ev.DocumentID), Value: value}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.WarnContext(ctx, "publish page submitted event failed",
				"document_id", ev.DocumentID,
				"page", ev.PageSlug,
				"error", err,
			)
		}
	})
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close(ctx context.Context) {
	if p == nil {
		return
	}
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("flush event producer", "error", err)
	}
	p.client.Close()
}
