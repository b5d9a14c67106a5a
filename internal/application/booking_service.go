package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	"github.com/autoconnect-transport/service-admin/internal/kafka"
)

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID             uuid.UUID  `json:"id"`
	BookingNumber  string     `json:"booking_number"`
	UserID         uuid.UUID  `json:"user_id"`
	CarID          uuid.UUID  `json:"car_id"`
	Status         string     `json:"status"`
	ClientName     string     `json:"client_name"`
	ClientEmail    string     `json:"client_email"`
	ClientPhone    string     `json:"client_phone,omitempty"`
	PickupLocation string     `json:"pickup_location"`
	PickupDate     time.Time  `json:"pickup_date"`
	PickupTime     string     `json:"pickup_time,omitempty"`
	ReturnLocation string     `json:"return_location"`
	ReturnDate     time.Time  `json:"return_date"`
	ReturnTime     string     `json:"return_time,omitempty"`
	RentalType     string     `json:"rental_type"`
	PriceCents     int64      `json:"price_cents"`
	ExpensesCents  int64      `json:"expenses_cents"`
	CancelFeeCents int64      `json:"cancel_fee_cents"`
	CancelReason   string     `json:"cancel_reason"`
	CancelDate     *time.Time `json:"cancel_date,omitempty"`
	Officer        string     `json:"officer,omitempty"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TransitionResultDTO pairs the updated booking with its dispatch report.
type TransitionResultDTO struct {
	Booking BookingDTO     `json:"booking"`
	Effects DispatchReport `json:"effects"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// statusChangedEvent is the payload published after a transition succeeds.
type statusChangedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	UserID        uuid.UUID `json:"user_id"`
	Status        string    `json:"status"`
	Officer       string    `json:"officer"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// invoiceDueEvent asks the invoice consumer to build and send an invoice.
type invoiceDueEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes event envelopes to the booking event stream.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event *kafka.Event) error
}

// BookingService orchestrates admin-side booking status changes.
type BookingService struct {
	repo       bookingDomain.BookingRepository
	lifecycle  *bookingDomain.Lifecycle
	dispatcher *SideEffectDispatcher
	producer   EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	lifecycle *bookingDomain.Lifecycle,
	dispatcher *SideEffectDispatcher,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:       repo,
		lifecycle:  lifecycle,
		dispatcher: dispatcher,
		producer:   producer,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// PendingBooking puts a booking back into Pending.
func (s *BookingService) PendingBooking(ctx context.Context, bookingID uuid.UUID, actor bookingDomain.Actor) (*TransitionResultDTO, error) {
	return s.transition(ctx, bookingID, bookingDomain.TransitionInput{
		Target: bookingDomain.StatusPending,
		Actor:  actor,
	})
}

// ConfirmBooking confirms a booking and signals that an invoice is due.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID, actor bookingDomain.Actor) (*TransitionResultDTO, error) {
	return s.transition(ctx, bookingID, bookingDomain.TransitionInput{
		Target: bookingDomain.StatusConfirmed,
		Actor:  actor,
	})
}

// FinishBooking completes a booking, recording trip expenses.
func (s *BookingService) FinishBooking(ctx context.Context, bookingID uuid.UUID, actor bookingDomain.Actor, expensesCents *int64) (*TransitionResultDTO, error) {
	return s.transition(ctx, bookingID, bookingDomain.TransitionInput{
		Target:        bookingDomain.StatusFinished,
		Actor:         actor,
		ExpensesCents: expensesCents,
	})
}

// CancelBooking cancels a booking with the given reason. The cancellation fee
// is derived from how close the pickup date is.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor bookingDomain.Actor, reason string) (*TransitionResultDTO, error) {
	return s.transition(ctx, bookingID, bookingDomain.TransitionInput{
		Target:       bookingDomain.StatusCancelled,
		Actor:        actor,
		CancelReason: reason,
	})
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics for the dashboard.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// transition loads the booking, applies the lifecycle transition, dispatches
// its side effects and publishes the resulting events.
func (s *BookingService) transition(ctx context.Context, bookingID uuid.UUID, in bookingDomain.TransitionInput) (*TransitionResultDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	in.UserID = bk.UserID()
	in.ClientEmail = bk.ClientEmail()

	intent, err := s.lifecycle.Transition(bk, in, s.now())
	if err != nil {
		return nil, err
	}

	report, err := s.dispatcher.Dispatch(ctx, intent)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, bk)
	if intent.InvoiceDue {
		s.publishInvoiceDue(ctx, bk)
	}

	return &TransitionResultDTO{
		Booking: toBookingDTO(bk),
		Effects: *report,
	}, nil
}

func (s *BookingService) publishStatusChanged(ctx context.Context, bk *bookingDomain.Booking) {
	evt := statusChangedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		UserID:        bk.UserID(),
		Status:        string(bk.Status()),
		Officer:       bk.Officer(),
		OccurredAt:    s.now(),
	}
	s.publishEvent(ctx, kafka.EventBookingStatusChanged, bk.ID().String(), evt)
}

func (s *BookingService) publishInvoiceDue(ctx context.Context, bk *bookingDomain.Booking) {
	evt := invoiceDueEvent{
		BookingID:  bk.ID(),
		OccurredAt: s.now(),
	}
	s.publishEvent(ctx, kafka.EventBookingInvoiceDue, bk.ID().String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	event, err := kafka.NewEvent("service-admin", eventType, data)
	if err != nil {
		s.logger.Error("failed to create event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, kafka.TopicBookingEvents, key, event); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:             bk.ID(),
		BookingNumber:  bk.BookingNumber(),
		UserID:         bk.UserID(),
		CarID:          bk.CarID(),
		Status:         string(bk.Status()),
		ClientName:     bk.ClientName(),
		ClientEmail:    bk.ClientEmail(),
		ClientPhone:    bk.ClientPhone(),
		PickupLocation: bk.PickupLocation(),
		PickupDate:     bk.PickupDate(),
		PickupTime:     bk.PickupTime(),
		ReturnLocation: bk.ReturnLocation(),
		ReturnDate:     bk.ReturnDate(),
		ReturnTime:     bk.ReturnTime(),
		RentalType:     bk.RentalType(),
		PriceCents:     bk.PriceCents(),
		ExpensesCents:  bk.ExpensesCents(),
		CancelFeeCents: bk.CancelFeeCents(),
		CancelReason:   bk.CancelReason(),
		CancelDate:     bk.CancelDate(),
		Officer:        bk.Officer(),
		Version:        bk.Version(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
}
