package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	adminDomain "github.com/autoconnect-transport/service-admin/internal/domain/admin"
)

// AdminModel is the GORM model for the admin_users table.
type AdminModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:200"`
	Email     string    `gorm:"uniqueIndex;not null;size:200"`
	Role      string    `gorm:"not null;size:50"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AdminModel) TableName() string {
	return "admin_users"
}

// GormAdminRepository is the GORM-based implementation of AdminRepository.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository.
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// FindByEmail retrieves an admin by email address.
func (r *GormAdminRepository) FindByEmail(ctx context.Context, email string) (*adminDomain.Admin, error) {
	var model AdminModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Admin", email)
		}
		return nil, fmt.Errorf("failed to find admin by email: %w", err)
	}
	return toDomainAdmin(&model), nil
}

// FindByID retrieves an admin by its unique identifier.
func (r *GormAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*adminDomain.Admin, error) {
	var model AdminModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Admin", id.String())
		}
		return nil, fmt.Errorf("failed to find admin by ID: %w", err)
	}
	return toDomainAdmin(&model), nil
}

func toDomainAdmin(m *AdminModel) *adminDomain.Admin {
	return &adminDomain.Admin{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Role:  m.Role,
	}
}
