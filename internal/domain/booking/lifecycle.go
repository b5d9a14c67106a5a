package booking

import (
	"fmt"
	"time"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	"github.com/google/uuid"
)

const companyName = "AutoConnect Transport"

// Actor identifies the admin performing a transition.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}

// AuditEntry records who did what, with a sanitized snapshot of the booking.
type AuditEntry struct {
	AdminID   uuid.UUID
	AdminName string
	AdminRole string
	Action    string
	Details   map[string]any
}

// ClientNotification is an in-app notification addressed to the client.
type ClientNotification struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Role      string
}

// EmailMessage is a plain-text email addressed to the client.
type EmailMessage struct {
	Subject string
	Body    string
	To      string
}

// TransitionInput carries the caller-provided data for one status transition.
type TransitionInput struct {
	Target        BookingStatus
	Actor         Actor
	UserID        uuid.UUID
	ClientEmail   string
	CancelReason  string
	ExpensesCents *int64
}

// TransitionIntent is the outcome of one validated transition: the updated
// booking state plus the side effects to dispatch, in order. It is consumed
// once by the dispatcher and then discarded.
type TransitionIntent struct {
	Target       BookingStatus
	Booking      *Booking
	Audit        AuditEntry
	Notification ClientNotification
	Email        EmailMessage

	// InvoiceDue signals that an invoice should follow this transition.
	// Building and sending the invoice is the invoice service's job.
	InvoiceDue bool
}

// Lifecycle validates status transitions and produces their side-effect
// intents. One parameterized path covers all four targets; only Cancelled
// carries a precondition and a derived computation.
type Lifecycle struct {
	policy CancellationPolicy
}

// NewLifecycle creates a Lifecycle with the given cancellation policy.
func NewLifecycle(policy CancellationPolicy) *Lifecycle {
	return &Lifecycle{policy: policy}
}

// Transition applies the requested transition to the booking and returns the
// intent describing the new state and its side effects. The booking is
// mutated in place; now must be injected by the caller.
func (l *Lifecycle) Transition(b *Booking, in TransitionInput, now time.Time) (*TransitionIntent, error) {
	if !in.Target.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid target status: %s", in.Target))
	}
	if !b.Status().CanTransitionTo(in.Target) {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"cannot change booking %s from %s to %s", b.BookingNumber(), b.Status(), in.Target))
	}

	switch in.Target {
	case StatusPending:
		return l.toPending(b, in), nil
	case StatusConfirmed:
		return l.toConfirmed(b, in), nil
	case StatusFinished:
		return l.toFinished(b, in), nil
	case StatusCancelled:
		return l.toCancelled(b, in, now)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid target status: %s", in.Target))
	}
}

func (l *Lifecycle) toPending(b *Booking, in TransitionInput) *TransitionIntent {
	b.MarkPending(in.Actor.Name)
	ref := b.BookingNumber()

	body := fmt.Sprintf(`Hello,

We're writing to let you know that your booking (ID: %s) is currently marked as pending. Please review the booking details on our platform at your earliest convenience.
Below are a few details of the said booking:
Booking ID: %s
Pickup Location: %s
Pickup Date: %s
Pickup Time: %s
Return Location: %s
Return Date: %s
Return Time: %s
Date Booked: %s

If you have any questions or need assistance, don't hesitate to reach out to us.

Thank you for choosing %s! We look forward to assisting you further.

Best regards,
The %s Team`,
		ref, ref,
		b.PickupLocation(), formatDate(b.PickupDate()), formatClock(b.PickupTime()),
		b.ReturnLocation(), formatDate(b.ReturnDate()), formatClock(b.ReturnTime()),
		formatDate(b.CreatedAt()),
		companyName, companyName)

	return &TransitionIntent{
		Target:  StatusPending,
		Booking: b,
		Audit:   l.audit(b, in.Actor, fmt.Sprintf("Change Status of Booking %s into Pending", ref)),
		Notification: ClientNotification{
			BookingID: b.ID(),
			UserID:    in.UserID,
			Title:     "Booking Pending.",
			Message:   fmt.Sprintf("Your Booking %s has been put into Pending, please review it.", ref),
			Role:      in.Actor.Role,
		},
		Email: EmailMessage{
			Subject: "Booking Pending: Action Required",
			Body:    body,
			To:      in.ClientEmail,
		},
	}
}

func (l *Lifecycle) toConfirmed(b *Booking, in TransitionInput) *TransitionIntent {
	b.MarkConfirmed(in.Actor.Name)
	ref := b.BookingNumber()

	body := fmt.Sprintf(`Hello,

Great news! Your booking (ID: %s) has been successfully confirmed. We're thrilled to have the opportunity to serve you and ensure your journey goes smoothly.

If you have any questions or need assistance, feel free to contact us at any time.

Thank you for choosing %s. We look forward to serving you!

Best regards,
The %s Team`, ref, companyName, companyName)

	return &TransitionIntent{
		Target:  StatusConfirmed,
		Booking: b,
		Audit:   l.audit(b, in.Actor, fmt.Sprintf("Change Status of Booking %s into Confirmed", ref)),
		Notification: ClientNotification{
			BookingID: b.ID(),
			UserID:    in.UserID,
			Title:     "Booking Confirmed.",
			Message: fmt.Sprintf(
				"Great news! Your Booking:%s has been confirmed. An automated invoice will be sent to your registered email shortly.", ref),
			Role: in.Actor.Role,
		},
		Email: EmailMessage{
			Subject: "Booking Confirmed: Thank You!",
			Body:    body,
			To:      in.ClientEmail,
		},
		InvoiceDue: true,
	}
}

func (l *Lifecycle) toFinished(b *Booking, in TransitionInput) *TransitionIntent {
	var expenses int64
	if in.ExpensesCents != nil {
		expenses = *in.ExpensesCents
	}
	b.MarkFinished(in.Actor.Name, expenses)
	ref := b.BookingNumber()

	body := fmt.Sprintf(`Hello,

We're excited to let you know that your booking (ID: %s) has been successfully completed! We hope you had a fantastic experience using our service.

Thank you for choosing %s. We truly appreciate your trust in us and look forward to serving you again in the future.

If you have any feedback or questions, please don't hesitate to reach out.

Best regards,
The %s Team`, ref, companyName, companyName)

	return &TransitionIntent{
		Target:  StatusFinished,
		Booking: b,
		Audit:   l.audit(b, in.Actor, fmt.Sprintf("Change Status of Booking %s into Finished", ref)),
		Notification: ClientNotification{
			BookingID: b.ID(),
			UserID:    in.UserID,
			Title:     "Booking Finished.",
			Message: fmt.Sprintf(
				"Your Booking:%s is now marked as finished! We hope you had a great experience. Please consider leaving a feedback. Thanks for choosing us!", ref),
			Role: in.Actor.Role,
		},
		Email: EmailMessage{
			Subject: "Booking Completed: Thank You!",
			Body:    body,
			To:      in.ClientEmail,
		},
	}
}

func (l *Lifecycle) toCancelled(b *Booking, in TransitionInput, now time.Time) (*TransitionIntent, error) {
	if in.CancelReason == "" {
		return nil, domain.NewValidationError("cancellation reason is required")
	}

	fee := l.policy.Fee(b.PickupDate(), b.PriceCents(), now)
	b.MarkCancelled(in.Actor.Name, in.CancelReason, fee, now)
	ref := b.BookingNumber()

	body := fmt.Sprintf(`Hello,

We regret to inform you that your booking (ID: %s) cannot be processed at this time.

Reason for Decline: %s

We understand this may be disappointing, and we sincerely apologize for the inconvenience. Our team is committed to providing the best possible service, even when we cannot accommodate a specific request.

We'd be happy to help you explore alternative options or find a solution that meets your transportation needs. Please feel free to contact us for further assistance.

Thank you for your understanding.

Best regards,
The %s Team`, ref, in.CancelReason, companyName)

	return &TransitionIntent{
		Target:  StatusCancelled,
		Booking: b,
		Audit:   l.audit(b, in.Actor, fmt.Sprintf("Change status of %s into Cancelled", ref)),
		Notification: ClientNotification{
			BookingID: b.ID(),
			UserID:    in.UserID,
			Title:     "Booking Declined.",
			Message: fmt.Sprintf(
				"We're sorry to inform you that your Booking:%s has been declined. The reason for the decline is: %s.", ref, in.CancelReason),
			Role: in.Actor.Role,
		},
		Email: EmailMessage{
			Subject: "Booking Update: Unfortunately Declined",
			Body:    body,
			To:      in.ClientEmail,
		},
	}, nil
}

// audit builds the audit entry with a scalar-only snapshot of the booking.
// Binary and nested payloads never reach the audit log.
func (l *Lifecycle) audit(b *Booking, actor Actor, action string) AuditEntry {
	details := map[string]any{
		"booking_id":       b.ID().String(),
		"booking_number":   b.BookingNumber(),
		"status":           b.Status().String(),
		"price_cents":      b.PriceCents(),
		"expenses_cents":   b.ExpensesCents(),
		"cancel_fee_cents": b.CancelFeeCents(),
		"cancel_reason":    b.CancelReason(),
		"officer":          b.Officer(),
		"pickup_location":  b.PickupLocation(),
		"pickup_date":      formatDate(b.PickupDate()),
		"return_location":  b.ReturnLocation(),
		"return_date":      formatDate(b.ReturnDate()),
	}
	if b.CancelDate() != nil {
		details["cancel_date"] = formatDate(*b.CancelDate())
	}
	return AuditEntry{
		AdminID:   actor.ID,
		AdminName: actor.Name,
		AdminRole: actor.Role,
		Action:    action,
		Details:   details,
	}
}

// formatDate renders a date as M/D/YYYY for client-facing copy.
func formatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// formatClock renders an "HH:MM[:SS]" time of day in 12-hour form. A missing
// or unparseable value renders as "N/A" rather than failing the transition.
func formatClock(clock string) string {
	if clock == "" {
		return "N/A"
	}
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
	}
	if err != nil {
		return "N/A"
	}
	return t.Format("3:04 PM")
}
