package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	carDomain "github.com/autoconnect-transport/service-admin/internal/domain/car"
)

type mockCarRepo struct {
	mock.Mock
}

func (m *mockCarRepo) FindByID(ctx context.Context, id uuid.UUID) (*carDomain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carDomain.Car), args.Error(1)
}

func (m *mockCarRepo) ListOptions(ctx context.Context) ([]carDomain.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]carDomain.Option), args.Error(1)
}

func (m *mockCarRepo) Save(ctx context.Context, c *carDomain.Car) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCarRepo) Update(ctx context.Context, c *carDomain.Car) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func invoiceBooking(rentalType string, pickup, ret time.Time) *bookingDomain.Booking {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	bk := bookingDomain.ReconstructBooking(
		uuid.New(),
		"BK-INV001",
		uuid.New(), uuid.New(),
		bookingDomain.StatusConfirmed,
		"Morgan Vale", "morgan@example.com", "+15550111",
		"Central Depot", pickup, "10:00",
		"Harbor Lot", ret, "16:00",
		rentalType,
		150000, 0, 0,
		bookingDomain.CancelReasonNone,
		nil,
		"Alex Officer",
		2,
		created, created,
	)
	return bk
}

func invoiceCar(t *testing.T) *carDomain.Car {
	t.Helper()
	c, err := carDomain.NewCar(
		"Toyota", "HiAce", "van", "manual",
		50000, 12, 6, 4,
		"aircon", "fleet van", "ABC-1234", "Sam Driver",
	)
	require.NoError(t, err)
	return c
}

func TestSendInvoice(t *testing.T) {
	bookings := new(mockBookingRepo)
	cars := new(mockCarRepo)
	email := new(mockEmailChannel)

	pickup := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	bk := invoiceBooking("personal", pickup, ret)
	car := invoiceCar(t)

	bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	cars.On("FindByID", mock.Anything, bk.CarID()).Return(car, nil)

	var sentSubject, sentBody string
	email.On("Send", "morgan@example.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentSubject = args.Get(1).(string)
			sentBody = args.Get(2).(string)
		}).
		Return(nil)

	svc := NewInvoiceService(bookings, cars, email, zap.NewNop())
	require.NoError(t, svc.SendInvoice(context.Background(), bk.ID()))

	assert.Equal(t, "Invoice #BK-INV001", sentSubject)
	assert.Contains(t, sentBody, "AutoConnect Transport")
	assert.Contains(t, sentBody, "Invoice No: BK-INV001")
	assert.Contains(t, sentBody, "Booking Officer: Alex Officer")
	assert.Contains(t, sentBody, "7/1/2025 - 7/4/2025")
	assert.Contains(t, sentBody, "Toyota HiAce (ABC-1234)")
	assert.Contains(t, sentBody, "Driver: Sam Driver")
	assert.Contains(t, sentBody, "Guest: Morgan Vale")
	assert.Contains(t, sentBody, "For Personal")
	assert.Contains(t, sentBody, "Total: 1500.00")
}

func TestSendInvoiceCompanyRental(t *testing.T) {
	bookings := new(mockBookingRepo)
	cars := new(mockCarRepo)
	email := new(mockEmailChannel)

	pickup := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	bk := invoiceBooking("company", pickup, ret)

	bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	cars.On("FindByID", mock.Anything, bk.CarID()).Return(invoiceCar(t), nil)

	var sentBody string
	email.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentBody = args.Get(2).(string) }).
		Return(nil)

	svc := NewInvoiceService(bookings, cars, email, zap.NewNop())
	require.NoError(t, svc.SendInvoice(context.Background(), bk.ID()))

	assert.Contains(t, sentBody, "For Company")
}

func TestSendInvoiceCarLookupFailureStillSends(t *testing.T) {
	bookings := new(mockBookingRepo)
	cars := new(mockCarRepo)
	email := new(mockEmailChannel)

	pickup := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	bk := invoiceBooking("personal", pickup, ret)

	bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	cars.On("FindByID", mock.Anything, bk.CarID()).
		Return(nil, domain.NewNotFoundError("Car", bk.CarID().String()))
	email.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewInvoiceService(bookings, cars, email, zap.NewNop())
	assert.NoError(t, svc.SendInvoice(context.Background(), bk.ID()))
}

func TestSendInvoiceBookingNotFound(t *testing.T) {
	bookings := new(mockBookingRepo)
	id := uuid.New()
	bookings.On("FindByID", mock.Anything, id).
		Return(nil, domain.NewNotFoundError("Booking", id.String()))

	svc := NewInvoiceService(bookings, new(mockCarRepo), new(mockEmailChannel), zap.NewNop())
	err := svc.SendInvoice(context.Background(), id)

	require.Error(t, err)
	var nfErr *domain.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestRentalDays(t *testing.T) {
	base := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ret  time.Time
		want int64
	}{
		{"three full days", base.Add(72 * time.Hour), 3},
		{"partial day rounds up", base.Add(50 * time.Hour), 3},
		{"same day counts as one", base, 1},
		{"a few hours counts as one", base.Add(5 * time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rentalDays(base, tt.ret))
		})
	}
}
