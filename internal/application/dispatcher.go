package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
)

// AuditLog records admin actions for later review.
type AuditLog interface {
	Record(ctx context.Context, entry bookingDomain.AuditEntry) error
}

// NotificationChannel delivers in-app notifications to clients.
type NotificationChannel interface {
	Notify(ctx context.Context, n bookingDomain.ClientNotification) error
}

// EmailChannel delivers client-facing email.
type EmailChannel interface {
	Send(to, subject, body string) error
}

// DispatchReport records which side effects of a transition succeeded. The
// transition itself succeeds as soon as the state change is persisted; the
// report tells the caller what follow-up actually happened.
type DispatchReport struct {
	Audited  bool `json:"audited"`
	Notified bool `json:"notified"`
	Emailed  bool `json:"emailed"`
}

// SideEffectDispatcher persists a transition intent and runs its side effects.
//
// Persistence is the only critical step: if it fails, no effect runs and the
// error propagates. Each side effect after that is best-effort; a failure is
// logged and the remaining effects still run.
type SideEffectDispatcher struct {
	repo          bookingDomain.BookingRepository
	audit         AuditLog
	notifications NotificationChannel
	email         EmailChannel
	logger        *zap.Logger

	effectTimeout time.Duration
}

// NewSideEffectDispatcher creates a dispatcher with the given sinks.
func NewSideEffectDispatcher(
	repo bookingDomain.BookingRepository,
	audit AuditLog,
	notifications NotificationChannel,
	email EmailChannel,
	logger *zap.Logger,
) *SideEffectDispatcher {
	return &SideEffectDispatcher{
		repo:          repo,
		audit:         audit,
		notifications: notifications,
		email:         email,
		logger:        logger,
		effectTimeout: 5 * time.Second,
	}
}

// Dispatch persists the booking state carried by the intent, then runs the
// audit, notification and email effects in that order.
func (d *SideEffectDispatcher) Dispatch(ctx context.Context, intent *bookingDomain.TransitionIntent) (*DispatchReport, error) {
	bk := intent.Booking
	bk.IncrementVersion()
	if err := d.repo.Update(ctx, bk); err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			return nil, err
		}
		return nil, domain.NewPersistenceError(err)
	}

	report := &DispatchReport{}
	ref := bk.BookingNumber()

	{
		effectCtx, cancel := context.WithTimeout(ctx, d.effectTimeout)
		if err := d.audit.Record(effectCtx, intent.Audit); err != nil {
			d.logger.Error("failed to record audit entry",
				zap.String("booking_number", ref),
				zap.String("status", string(intent.Target)),
				zap.Error(err),
			)
		} else {
			report.Audited = true
		}
		cancel()
	}

	{
		effectCtx, cancel := context.WithTimeout(ctx, d.effectTimeout)
		if err := d.notifications.Notify(effectCtx, intent.Notification); err != nil {
			d.logger.Error("failed to store client notification",
				zap.String("booking_number", ref),
				zap.String("status", string(intent.Target)),
				zap.Error(err),
			)
		} else {
			report.Notified = true
		}
		cancel()
	}

	if err := d.email.Send(intent.Email.To, intent.Email.Subject, intent.Email.Body); err != nil {
		d.logger.Error("failed to send status email",
			zap.String("booking_number", ref),
			zap.String("status", string(intent.Target)),
			zap.Error(err),
		)
	} else {
		report.Emailed = true
	}

	return report, nil
}
