package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	"github.com/autoconnect-transport/service-admin/internal/kafka"
)

func newTestBookingService(
	repo *mockBookingRepo,
	audit *mockAuditLog,
	notifier *mockNotifier,
	email *mockEmailChannel,
	publisher *mockPublisher,
) *BookingService {
	lifecycle := bookingDomain.NewLifecycle(bookingDomain.NewTieredCancellationPolicy())
	dispatcher := NewSideEffectDispatcher(repo, audit, notifier, email, zap.NewNop())
	svc := NewBookingService(repo, lifecycle, dispatcher, publisher, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func serviceActor() bookingDomain.Actor {
	return bookingDomain.Actor{ID: uuid.New(), Name: "Alex Officer", Role: "superadmin"}
}

func expectEffectsSucceed(audit *mockAuditLog, notifier *mockNotifier, email *mockEmailChannel) {
	audit.On("Record", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	email.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestConfirmBookingPublishesInvoiceDue(t *testing.T) {
	repo := new(mockBookingRepo)
	audit := new(mockAuditLog)
	notifier := new(mockNotifier)
	email := new(mockEmailChannel)
	publisher := new(mockPublisher)

	bk := dispatcherBooking(bookingDomain.StatusPending)
	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).Return(nil)
	expectEffectsSucceed(audit, notifier, email)

	var publishedTypes []string
	publisher.On("PublishEvent", mock.Anything, kafka.TopicBookingEvents, bk.ID().String(), mock.Anything).
		Run(func(args mock.Arguments) {
			publishedTypes = append(publishedTypes, args.Get(3).(*kafka.Event).Type)
		}).
		Return(nil)

	svc := newTestBookingService(repo, audit, notifier, email, publisher)
	result, err := svc.ConfirmBooking(context.Background(), bk.ID(), serviceActor())
	require.NoError(t, err)

	assert.Equal(t, "Confirmed", result.Booking.Status)
	assert.True(t, result.Effects.Audited)
	assert.True(t, result.Effects.Notified)
	assert.True(t, result.Effects.Emailed)
	assert.Equal(t,
		[]string{kafka.EventBookingStatusChanged, kafka.EventBookingInvoiceDue},
		publishedTypes,
		"confirmation publishes the status change and then the invoice signal",
	)
}

func TestPendingBookingPublishesOnlyStatusChanged(t *testing.T) {
	repo := new(mockBookingRepo)
	audit := new(mockAuditLog)
	notifier := new(mockNotifier)
	email := new(mockEmailChannel)
	publisher := new(mockPublisher)

	bk := dispatcherBooking(bookingDomain.StatusCancelled)
	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).Return(nil)
	expectEffectsSucceed(audit, notifier, email)

	var publishedTypes []string
	publisher.On("PublishEvent", mock.Anything, kafka.TopicBookingEvents, bk.ID().String(), mock.Anything).
		Run(func(args mock.Arguments) {
			publishedTypes = append(publishedTypes, args.Get(3).(*kafka.Event).Type)
		}).
		Return(nil)

	svc := newTestBookingService(repo, audit, notifier, email, publisher)
	result, err := svc.PendingBooking(context.Background(), bk.ID(), serviceActor())
	require.NoError(t, err)

	assert.Equal(t, "Pending", result.Booking.Status)
	assert.Equal(t, bookingDomain.CancelReasonNone, result.Booking.CancelReason)
	assert.Nil(t, result.Booking.CancelDate)
	assert.Equal(t, []string{kafka.EventBookingStatusChanged}, publishedTypes)
}

func TestFinishBookingRecordsExpenses(t *testing.T) {
	repo := new(mockBookingRepo)
	audit := new(mockAuditLog)
	notifier := new(mockNotifier)
	email := new(mockEmailChannel)
	publisher := new(mockPublisher)

	bk := dispatcherBooking(bookingDomain.StatusConfirmed)
	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).Return(nil)
	expectEffectsSucceed(audit, notifier, email)
	publisher.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestBookingService(repo, audit, notifier, email, publisher)
	expenses := int64(3200)
	result, err := svc.FinishBooking(context.Background(), bk.ID(), serviceActor(), &expenses)
	require.NoError(t, err)

	assert.Equal(t, "Finished", result.Booking.Status)
	assert.Equal(t, int64(3200), result.Booking.ExpensesCents)
}

func TestCancelBookingWithoutReasonFails(t *testing.T) {
	repo := new(mockBookingRepo)
	audit := new(mockAuditLog)
	notifier := new(mockNotifier)
	email := new(mockEmailChannel)
	publisher := new(mockPublisher)

	bk := dispatcherBooking(bookingDomain.StatusPending)
	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	svc := newTestBookingService(repo, audit, notifier, email, publisher)
	_, err := svc.CancelBooking(context.Background(), bk.ID(), serviceActor(), "")

	require.Error(t, err)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBookingComputesFee(t *testing.T) {
	repo := new(mockBookingRepo)
	audit := new(mockAuditLog)
	notifier := new(mockNotifier)
	email := new(mockEmailChannel)
	publisher := new(mockPublisher)

	// Pickup 2025-07-01, now 2025-06-10: more than 7 days out, no fee.
	bk := dispatcherBooking(bookingDomain.StatusConfirmed)
	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).Return(nil)
	expectEffectsSucceed(audit, notifier, email)
	publisher.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestBookingService(repo, audit, notifier, email, publisher)
	result, err := svc.CancelBooking(context.Background(), bk.ID(), serviceActor(), "client request")
	require.NoError(t, err)

	assert.Equal(t, "Cancelled", result.Booking.Status)
	assert.Zero(t, result.Booking.CancelFeeCents)
	assert.Equal(t, "client request", result.Booking.CancelReason)
	require.NotNil(t, result.Booking.CancelDate)
}

func TestTransitionUpdateConflictSurfaces(t *testing.T) {
	repo := new(mockBookingRepo)
	audit := new(mockAuditLog)
	notifier := new(mockNotifier)
	email := new(mockEmailChannel)
	publisher := new(mockPublisher)

	bk := dispatcherBooking(bookingDomain.StatusPending)
	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).
		Return(domain.NewConflictError("booking was modified by another transaction"))

	svc := newTestBookingService(repo, audit, notifier, email, publisher)
	_, err := svc.ConfirmBooking(context.Background(), bk.ID(), serviceActor())

	require.Error(t, err)
	var cErr *domain.ConflictError
	assert.ErrorAs(t, err, &cErr)
	audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBookingNotFound(t *testing.T) {
	repo := new(mockBookingRepo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, domain.NewNotFoundError("Booking", id.String()))

	svc := newTestBookingService(repo, new(mockAuditLog), new(mockNotifier), new(mockEmailChannel), new(mockPublisher))
	_, err := svc.GetBooking(context.Background(), id)

	require.Error(t, err)
	var nfErr *domain.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestGetBookingStats(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("CountByStatus", mock.Anything).Return(map[string]int64{
		"Pending":   3,
		"Confirmed": 5,
		"Finished":  10,
		"Cancelled": 2,
	}, nil)

	svc := newTestBookingService(repo, new(mockAuditLog), new(mockNotifier), new(mockEmailChannel), new(mockPublisher))
	stats, err := svc.GetBookingStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(20), stats.TotalBookings)
	assert.Equal(t, int64(5), stats.ByStatus["Confirmed"])
}

func TestGetBookingStatsError(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("CountByStatus", mock.Anything).Return(nil, errors.New("db down"))

	svc := newTestBookingService(repo, new(mockAuditLog), new(mockNotifier), new(mockEmailChannel), new(mockPublisher))
	_, err := svc.GetBookingStats(context.Background())
	require.Error(t, err)
}
