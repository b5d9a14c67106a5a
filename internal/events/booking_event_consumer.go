package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/application"
	"github.com/autoconnect-transport/service-admin/internal/kafka"
)

// invoiceDueEvent mirrors the payload published by the booking service.
type invoiceDueEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingEventConsumer listens to booking events and sends invoices when a
// confirmation marks one as due.
type BookingEventConsumer struct {
	consumer *kafka.Consumer
	invoices *application.InvoiceService
	logger   *zap.Logger
}

// NewBookingEventConsumer creates a new BookingEventConsumer.
func NewBookingEventConsumer(
	brokers []string,
	groupID string,
	invoices *application.InvoiceService,
	logger *zap.Logger,
) *BookingEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, kafka.TopicBookingEvents, logger)
	return &BookingEventConsumer{
		consumer: consumer,
		invoices: invoices,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is cancelled.
func (c *BookingEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *BookingEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *BookingEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var event kafka.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("failed to parse event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch event.Type {
	case kafka.EventBookingInvoiceDue:
		return c.handleInvoiceDue(ctx, event)
	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", event.Type),
		)
		return nil
	}
}

func (c *BookingEventConsumer) handleInvoiceDue(ctx context.Context, event kafka.Event) error {
	var evt invoiceDueEvent
	if err := event.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse invoice due event data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing invoice due event",
		zap.String("booking_id", evt.BookingID.String()),
	)

	if err := c.invoices.SendInvoice(ctx, evt.BookingID); err != nil {
		c.logger.Error("failed to send invoice",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}
