package booking

import "fmt"

// BookingStatus represents the current state of a rental booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusFinished  BookingStatus = "Finished"
	StatusCancelled BookingStatus = "Cancelled"
)

// allowedTargets lists, per status, the statuses an admin may move a booking
// into. Every status is reachable from every other: the admin console
// deliberately gives booking officers full manual override, so the table
// documents the graph rather than restricting it.
var allowedTargets = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusPending, StatusConfirmed, StatusFinished, StatusCancelled},
	StatusConfirmed: {StatusPending, StatusConfirmed, StatusFinished, StatusCancelled},
	StatusFinished:  {StatusPending, StatusConfirmed, StatusFinished, StatusCancelled},
	StatusCancelled: {StatusPending, StatusConfirmed, StatusFinished, StatusCancelled},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := allowedTargets[s]
	return exists
}

// CanTransitionTo returns true if an admin may move a booking from this
// status to the target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := allowedTargets[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
