package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	"github.com/google/uuid"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CancelReasonNone is the sentinel stored on every booking that is not
// cancelled. Non-cancel transitions reset the reason back to it.
const CancelReasonNone = "None"

// Booking is the aggregate root for a rental reservation.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	userID        uuid.UUID
	carID         uuid.UUID
	status        BookingStatus

	clientName  string
	clientEmail string
	clientPhone string

	pickupLocation string
	pickupDate     time.Time
	pickupTime     string
	returnLocation string
	returnDate     time.Time
	returnTime     string
	rentalType     string

	priceCents     int64
	expensesCents  int64
	cancelFeeCents int64
	cancelReason   string
	cancelDate     *time.Time
	officer        string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "BK-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "BK-" + string(result), nil
}

// NewBooking creates a new Booking aggregate in status Pending. Intake
// normally happens on the client side of the platform; this constructor
// exists for seeding and tests on the admin side.
func NewBooking(
	userID, carID uuid.UUID,
	clientName, clientEmail, clientPhone string,
	pickupLocation string, pickupDate time.Time, pickupTime string,
	returnLocation string, returnDate time.Time, returnTime string,
	rentalType string,
	priceCents int64,
) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if carID == uuid.Nil {
		return nil, domain.NewValidationError("car ID is required")
	}
	if clientName == "" {
		return nil, domain.NewValidationError("client name is required")
	}
	if clientEmail == "" {
		return nil, domain.NewValidationError("client email is required")
	}
	if priceCents < 0 {
		return nil, domain.NewValidationError("price cannot be negative")
	}
	if returnDate.Before(pickupDate) {
		return nil, domain.NewValidationError("return date cannot precede pickup date")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		bookingNumber:  bookingNumber,
		userID:         userID,
		carID:          carID,
		status:         StatusPending,
		clientName:     clientName,
		clientEmail:    clientEmail,
		clientPhone:    clientPhone,
		pickupLocation: pickupLocation,
		pickupDate:     pickupDate,
		pickupTime:     pickupTime,
		returnLocation: returnLocation,
		returnDate:     returnDate,
		returnTime:     returnTime,
		rentalType:     rentalType,
		priceCents:     priceCents,
		cancelReason:   CancelReasonNone,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	userID, carID uuid.UUID,
	status BookingStatus,
	clientName, clientEmail, clientPhone string,
	pickupLocation string, pickupDate time.Time, pickupTime string,
	returnLocation string, returnDate time.Time, returnTime string,
	rentalType string,
	priceCents, expensesCents, cancelFeeCents int64,
	cancelReason string,
	cancelDate *time.Time,
	officer string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		bookingNumber:  bookingNumber,
		userID:         userID,
		carID:          carID,
		status:         status,
		clientName:     clientName,
		clientEmail:    clientEmail,
		clientPhone:    clientPhone,
		pickupLocation: pickupLocation,
		pickupDate:     pickupDate,
		pickupTime:     pickupTime,
		returnLocation: returnLocation,
		returnDate:     returnDate,
		returnTime:     returnTime,
		rentalType:     rentalType,
		priceCents:     priceCents,
		expensesCents:  expensesCents,
		cancelFeeCents: cancelFeeCents,
		cancelReason:   cancelReason,
		cancelDate:     cancelDate,
		officer:        officer,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// UserID returns the client's user ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// CarID returns the booked vehicle's ID.
func (b *Booking) CarID() uuid.UUID { return b.carID }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// ClientName returns the client's name.
func (b *Booking) ClientName() string { return b.clientName }

// ClientEmail returns the client's email address.
func (b *Booking) ClientEmail() string { return b.clientEmail }

// ClientPhone returns the client's phone number.
func (b *Booking) ClientPhone() string { return b.clientPhone }

// PickupLocation returns the pickup location.
func (b *Booking) PickupLocation() string { return b.pickupLocation }

// PickupDate returns the pickup date.
func (b *Booking) PickupDate() time.Time { return b.pickupDate }

// PickupTime returns the pickup time of day ("HH:MM[:SS]"), or "" if unset.
func (b *Booking) PickupTime() string { return b.pickupTime }

// ReturnLocation returns the return location.
func (b *Booking) ReturnLocation() string { return b.returnLocation }

// ReturnDate returns the return date.
func (b *Booking) ReturnDate() time.Time { return b.returnDate }

// ReturnTime returns the return time of day ("HH:MM[:SS]"), or "" if unset.
func (b *Booking) ReturnTime() string { return b.returnTime }

// RentalType returns "personal" or "company".
func (b *Booking) RentalType() string { return b.rentalType }

// PriceCents returns the rental price in cents.
func (b *Booking) PriceCents() int64 { return b.priceCents }

// ExpensesCents returns the recorded expenses in cents.
func (b *Booking) ExpensesCents() int64 { return b.expensesCents }

// CancelFeeCents returns the cancellation fee in cents.
func (b *Booking) CancelFeeCents() int64 { return b.cancelFeeCents }

// CancelReason returns the cancellation reason, or the "None" sentinel.
func (b *Booking) CancelReason() string { return b.cancelReason }

// CancelDate returns the cancellation date, or nil.
func (b *Booking) CancelDate() *time.Time { return b.cancelDate }

// Officer returns the name of the admin who last changed the status.
func (b *Booking) Officer() string { return b.officer }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// resetCancellation clears the cancellation fields back to their sentinels.
// Every non-cancel transition performs this reset.
func (b *Booking) resetCancellation() {
	b.cancelFeeCents = 0
	b.cancelReason = CancelReasonNone
	b.cancelDate = nil
}

// MarkPending moves the booking back into Pending under the given officer.
func (b *Booking) MarkPending(officer string) {
	b.status = StatusPending
	b.resetCancellation()
	b.officer = officer
	b.updatedAt = time.Now().UTC()
}

// MarkConfirmed confirms the booking under the given officer.
func (b *Booking) MarkConfirmed(officer string) {
	b.status = StatusConfirmed
	b.resetCancellation()
	b.officer = officer
	b.updatedAt = time.Now().UTC()
}

// MarkFinished finishes the booking, recording trip expenses.
func (b *Booking) MarkFinished(officer string, expensesCents int64) {
	b.status = StatusFinished
	b.resetCancellation()
	b.expensesCents = expensesCents
	b.officer = officer
	b.updatedAt = time.Now().UTC()
}

// MarkCancelled cancels the booking with the computed fee and reason.
func (b *Booking) MarkCancelled(officer, reason string, feeCents int64, cancelDate time.Time) {
	b.status = StatusCancelled
	b.cancelReason = reason
	b.cancelFeeCents = feeCents
	b.cancelDate = &cancelDate
	b.expensesCents = 0
	b.officer = officer
	b.updatedAt = time.Now().UTC()
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
