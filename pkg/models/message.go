package models

import (
	"encoding/json"
	"fmt"

	"github.com/alim08/stockpush/pkg/validation"
)

// OutboundMessage is what gets queued for every successfully priced ticker.
type OutboundMessage struct {
	Ticker string  `json:"ticker" validate:"required,ticker"`
	Price  float64 `json:"price" validate:"price"`
}

// Validate validates the OutboundMessage struct
func (m OutboundMessage) Validate() error {
	if errors := validation.ValidateStruct(m); len(errors) > 0 {
		return errors
	}
	return nil
}

// ToJSON is the wire form used for Event Hubs and Kafka.
func (m OutboundMessage) ToJSON() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("json marshal error: %w", err)
	}
	return data, nil
}

// ToFields converts the message to ordered Redis stream field/value pairs.
func (m OutboundMessage) ToFields() []interface{} {
	return []interface{}{
		"ticker", m.Ticker,
		"price", FormatPrice(m.Price),
	}
}
