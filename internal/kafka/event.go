package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topic and event type constants for the admin service's event streams.
const (
	TopicBookingEvents = "booking.events"

	EventBookingStatusChanged = "booking.status.changed"
	EventBookingInvoiceDue    = "booking.invoice.due"
)

// Event is the CloudEvents-style envelope published to Kafka.
type Event struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewEvent wraps a payload in an envelope with a fresh event ID.
func NewEvent(source, eventType string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return &Event{
		ID:     uuid.NewString(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the envelope payload into v.
func (e *Event) ParseData(v any) error {
	return json.Unmarshal(e.Data, v)
}
