package queue

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azeventhubs"
	"github.com/alim08/stockpush/pkg/logger"
	"github.com/alim08/stockpush/pkg/models"
	"go.uber.org/zap"
)

const eventHubBackend = "eventhub"

var jsonContentType = "application/json"

// EventHub publishes to Azure Event Hubs.
type EventHub struct {
	client *azeventhubs.ProducerClient
}

// NewEventHub builds a producer from a namespace (or entity) connection string.
// An empty or malformed connection string fails here.
func NewEventHub(connStr, hub string) (*EventHub, error) {
	client, err := azeventhubs.NewProducerClientFromConnectionString(connStr, hub, nil)
	if err != nil {
		return nil, err
	}
	return &EventHub{client: client}, nil
}

type eventHubBatch struct {
	batch *azeventhubs.EventDataBatch
}

// Add fails with azeventhubs.ErrEventDataTooLarge once the service's size
// limit is reached.
func (b *eventHubBatch) Add(msg models.OutboundMessage) error {
	ed, err := newEventData(msg)
	if err != nil {
		return err
	}
	return b.batch.AddEventData(ed, nil)
}

// newEventData encodes msg as a JSON event body.
func newEventData(msg models.OutboundMessage) (*azeventhubs.EventData, error) {
	body, err := msg.ToJSON()
	if err != nil {
		return nil, err
	}
	contentType := jsonContentType
	return &azeventhubs.EventData{Body: body, ContentType: &contentType}, nil
}

func (b *eventHubBatch) Len() int { return int(b.batch.NumEvents()) }

func (e *EventHub) NewBatch(ctx context.Context) (Batch, error) {
	batch, err := e.client.NewEventDataBatch(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &eventHubBatch{batch: batch}, nil
}

func (e *EventHub) SendBatch(ctx context.Context, b Batch) error {
	eb, ok := b.(*eventHubBatch)
	if !ok {
		return fmt.Errorf("%s: batch of type %T was not created by this producer", eventHubBackend, b)
	}
	if eb.Len() == 0 {
		logger.Log.Debug("empty batch, nothing to send", zap.String("backend", eventHubBackend))
		return nil
	}
	return withMetrics(eventHubBackend, eb.Len(), func() error {
		return e.client.SendEventDataBatch(ctx, eb.batch, nil)
	})
}

func (e *EventHub) Close(ctx context.Context) error {
	return e.client.Close(ctx)
}
