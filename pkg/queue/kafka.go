package queue

import (
	"context"
	"errors"

	"github.com/alim08/stockpush/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const kafkaBackend = "kafka"

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes to a Kafka topic, keyed by ticker so one symbol stays on one
// partition.
type Kafka struct {
	w kafkaWriter
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}
	return &Kafka{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}, nil
}

func (k *Kafka) NewBatch(context.Context) (Batch, error) {
	return &memoryBatch{}, nil
}

// SendBatch hands the whole batch to a single synchronous WriteMessages call.
func (k *Kafka) SendBatch(ctx context.Context, b Batch) error {
	mb, err := asMemoryBatch(kafkaBackend, b)
	if err != nil {
		return err
	}
	if mb.Len() == 0 {
		logger.Log.Debug("empty batch, nothing to send", zap.String("backend", kafkaBackend))
		return nil
	}

	msgs := make([]kafka.Message, 0, mb.Len())
	for _, m := range mb.msgs {
		body, err := m.ToJSON()
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(m.Ticker), Value: body})
	}
	return withMetrics(kafkaBackend, len(msgs), func() error {
		return k.w.WriteMessages(ctx, msgs...)
	})
}

func (k *Kafka) Close(context.Context) error {
	return k.w.Close()
}
