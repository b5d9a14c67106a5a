package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
)

// AuditLogModel is the GORM model for the audit_logs table.
type AuditLogModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AdminID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	AdminName string          `gorm:"not null;size:200"`
	AdminRole string          `gorm:"not null;size:50"`
	Action    string          `gorm:"not null;size:500"`
	Details   json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// GormAuditRepository persists audit entries for admin actions.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Record appends one audit entry. Entries are append-only.
func (r *GormAuditRepository) Record(ctx context.Context, entry bookingDomain.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	model := &AuditLogModel{
		ID:        uuid.New(),
		AdminID:   entry.AdminID,
		AdminName: entry.AdminName,
		AdminRole: entry.AdminRole,
		Action:    entry.Action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
