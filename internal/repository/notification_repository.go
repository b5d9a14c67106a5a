package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
)

// NotificationModel is the GORM model for the notifications_client table.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"not null;size:200"`
	Message   string    `gorm:"not null;size:1000"`
	Role      string    `gorm:"not null;size:50"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (NotificationModel) TableName() string {
	return "notifications_client"
}

// GormNotificationRepository stores in-app notifications for clients.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Notify stores one notification addressed to the client.
func (r *GormNotificationRepository) Notify(ctx context.Context, n bookingDomain.ClientNotification) error {
	model := &NotificationModel{
		ID:        uuid.New(),
		BookingID: n.BookingID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Role:      n.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}
