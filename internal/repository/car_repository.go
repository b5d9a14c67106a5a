package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	carDomain "github.com/autoconnect-transport/service-admin/internal/domain/car"
)

// CarModel is the GORM model for the cars table.
type CarModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Brand        string    `gorm:"not null;size:100"`
	Model        string    `gorm:"not null;size:100"`
	CarType      string    `gorm:"size:50"`
	Transmission string    `gorm:"size:20"`
	PriceCents   int64     `gorm:"not null"`
	Capacity     int       `gorm:"not null;default:0"`
	Luggage      int       `gorm:"not null;default:0"`
	Doors        int       `gorm:"not null;default:0"`
	Features     string    `gorm:"size:1000"`
	Description  string    `gorm:"size:2000"`
	PlateNumber  string    `gorm:"uniqueIndex;not null;size:20"`
	Driver       string    `gorm:"size:200"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CarModel) TableName() string {
	return "cars"
}

// GormCarRepository is the GORM-based implementation of CarRepository.
type GormCarRepository struct {
	db *gorm.DB
}

// NewGormCarRepository creates a new GormCarRepository.
func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

// FindByID retrieves a car by its unique identifier.
func (r *GormCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*carDomain.Car, error) {
	var model CarModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Car", id.String())
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return toDomainCar(&model), nil
}

// ListOptions retrieves the id/model pairs used for booking form dropdowns.
func (r *GormCarRepository) ListOptions(ctx context.Context) ([]carDomain.Option, error) {
	var models []CarModel
	if err := r.db.WithContext(ctx).
		Select("id, model").
		Order("model ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list car options: %w", err)
	}

	options := make([]carDomain.Option, len(models))
	for i, m := range models {
		options[i] = carDomain.Option{ID: m.ID, Model: m.Model}
	}
	return options, nil
}

// Save persists a new car.
func (r *GormCarRepository) Save(ctx context.Context, c *carDomain.Car) error {
	model := toCarModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save car: %w", err)
	}
	return nil
}

// Update persists changes to an existing car with optimistic locking.
func (r *GormCarRepository) Update(ctx context.Context, c *carDomain.Car) error {
	model := toCarModel(c)

	expectedVersion := c.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&CarModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"brand":        model.Brand,
			"model":        model.Model,
			"car_type":     model.CarType,
			"transmission": model.Transmission,
			"price_cents":  model.PriceCents,
			"capacity":     model.Capacity,
			"luggage":      model.Luggage,
			"doors":        model.Doors,
			"features":     model.Features,
			"description":  model.Description,
			"plate_number": model.PlateNumber,
			"driver":       model.Driver,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update car: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("car was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toCarModel(c *carDomain.Car) *CarModel {
	return &CarModel{
		ID:           c.ID(),
		Brand:        c.Brand(),
		Model:        c.Model(),
		CarType:      c.Type(),
		Transmission: c.Transmission(),
		PriceCents:   c.PriceCents(),
		Capacity:     c.Capacity(),
		Luggage:      c.Luggage(),
		Doors:        c.Doors(),
		Features:     c.Features(),
		Description:  c.Description(),
		PlateNumber:  c.PlateNumber(),
		Driver:       c.Driver(),
		Version:      c.Version(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func toDomainCar(m *CarModel) *carDomain.Car {
	return carDomain.Reconstruct(
		m.ID,
		m.Brand,
		m.Model,
		m.CarType,
		m.Transmission,
		m.PriceCents,
		m.Capacity,
		m.Luggage,
		m.Doors,
		m.Features,
		m.Description,
		m.PlateNumber,
		m.Driver,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
