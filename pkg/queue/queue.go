// Package queue submits batches of outbound quote messages to an event stream.
//
// A Producer is request-scoped: open it, build one batch, send it, close it.
// Every backend treats an empty batch as a successful no-op so callers can
// submit unconditionally.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/alim08/stockpush/pkg/config"
	"github.com/alim08/stockpush/pkg/metrics"
	"github.com/alim08/stockpush/pkg/models"
)

// Producer sends batches to one queue.
type Producer interface {
	NewBatch(ctx context.Context) (Batch, error)
	SendBatch(ctx context.Context, b Batch) error
	Close(ctx context.Context) error
}

// Batch accumulates messages for a single SendBatch call.
type Batch interface {
	Add(msg models.OutboundMessage) error
	Len() int
}

// Opener creates a Producer for one request.
type Opener func(ctx context.Context) (Producer, error)

// NewOpener returns an Opener for the configured backend. Credentials are
// checked only when the Opener runs.
func NewOpener(cfg config.Queue) Opener {
	return func(ctx context.Context) (Producer, error) {
		return Open(ctx, cfg)
	}
}

// Open constructs a producer for cfg.Backend.
func Open(_ context.Context, cfg config.Queue) (Producer, error) {
	var (
		p   Producer
		err error
	)
	switch cfg.Backend {
	case config.BackendEventHub, "":
		p, err = NewEventHub(cfg.ConnectionString, cfg.Name)
	case config.BackendRedis:
		p, err = NewRedisStream(cfg.ConnectionString, cfg.Name)
	case config.BackendKafka:
		p, err = NewKafka(cfg.Brokers, cfg.Name)
	default:
		err = fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// memoryBatch buffers messages for backends without a native batch type.
type memoryBatch struct {
	msgs []models.OutboundMessage
}

func (b *memoryBatch) Add(msg models.OutboundMessage) error {
	b.msgs = append(b.msgs, msg)
	return nil
}

func (b *memoryBatch) Len() int { return len(b.msgs) }

// asMemoryBatch rejects batches created by a different backend.
func asMemoryBatch(backend string, b Batch) (*memoryBatch, error) {
	mb, ok := b.(*memoryBatch)
	if !ok {
		return nil, fmt.Errorf("%s: batch of type %T was not created by this producer", backend, b)
	}
	return mb, nil
}

// withMetrics wraps a send with latency and outcome collection.
func withMetrics(backend string, n int, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.PublishLatency.WithLabelValues(backend).Observe(time.Since(start).Seconds())
	metrics.PublishOperations.WithLabelValues(backend, "send", metrics.Status(err)).Inc()
	if err == nil {
		metrics.PublishedMessages.WithLabelValues(backend).Add(float64(n))
	}
	return err
}
