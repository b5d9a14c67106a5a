package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	carDomain "github.com/autoconnect-transport/service-admin/internal/domain/car"
)

// CarRequest holds the data for adding or updating a fleet vehicle.
type CarRequest struct {
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	CarType      string `json:"car_type"`
	Transmission string `json:"transmission"`
	PriceCents   int64  `json:"price_cents"`
	Capacity     int    `json:"capacity"`
	Luggage      int    `json:"luggage"`
	Doors        int    `json:"doors"`
	Features     string `json:"features"`
	Description  string `json:"description"`
	PlateNumber  string `json:"plate_number" binding:"required"`
	Driver       string `json:"driver"`
}

// CarDTO is the response representation of a fleet vehicle.
type CarDTO struct {
	ID           uuid.UUID `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	CarType      string    `json:"car_type"`
	Transmission string    `json:"transmission"`
	PriceCents   int64     `json:"price_cents"`
	Capacity     int       `json:"capacity"`
	Luggage      int       `json:"luggage"`
	Doors        int       `json:"doors"`
	Features     string    `json:"features"`
	Description  string    `json:"description"`
	PlateNumber  string    `json:"plate_number"`
	Driver       string    `json:"driver"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CarOptionDTO is the id/model pair used by booking form dropdowns.
type CarOptionDTO struct {
	ID    uuid.UUID `json:"id"`
	Model string    `json:"model"`
}

// FleetService manages the vehicle inventory.
type FleetService struct {
	repo   carDomain.CarRepository
	audit  AuditLog
	logger *zap.Logger
}

// NewFleetService creates a new FleetService.
func NewFleetService(repo carDomain.CarRepository, audit AuditLog, logger *zap.Logger) *FleetService {
	return &FleetService{repo: repo, audit: audit, logger: logger}
}

// AddCar registers a new vehicle in the fleet.
func (s *FleetService) AddCar(ctx context.Context, actor bookingDomain.Actor, req CarRequest) (*CarDTO, error) {
	c, err := carDomain.NewCar(
		req.Brand, req.Model, req.CarType, req.Transmission,
		req.PriceCents,
		req.Capacity, req.Luggage, req.Doors,
		req.Features, req.Description, req.PlateNumber, req.Driver,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, fmt.Sprintf("Added Car %s", c.PlateNumber()), c)

	result := toCarDTO(c)
	return &result, nil
}

// UpdateCar replaces the details of an existing vehicle.
func (s *FleetService) UpdateCar(ctx context.Context, carID uuid.UUID, actor bookingDomain.Actor, req CarRequest) (*CarDTO, error) {
	c, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateDetails(
		req.Brand, req.Model, req.CarType, req.Transmission,
		req.PriceCents,
		req.Capacity, req.Luggage, req.Doors,
		req.Features, req.Description, req.PlateNumber, req.Driver,
	); err != nil {
		return nil, err
	}

	c.IncrementVersion()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, fmt.Sprintf("Updated Car %s", c.PlateNumber()), c)

	result := toCarDTO(c)
	return &result, nil
}

// ListCarOptions returns the id/model pairs for booking form dropdowns.
func (s *FleetService) ListCarOptions(ctx context.Context) ([]CarOptionDTO, error) {
	options, err := s.repo.ListOptions(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]CarOptionDTO, len(options))
	for i, o := range options {
		dtos[i] = CarOptionDTO{ID: o.ID, Model: o.Model}
	}
	return dtos, nil
}

// recordAudit appends a fleet audit entry. Failures are logged, not surfaced.
func (s *FleetService) recordAudit(ctx context.Context, actor bookingDomain.Actor, action string, c *carDomain.Car) {
	entry := bookingDomain.AuditEntry{
		AdminID:   actor.ID,
		AdminName: actor.Name,
		AdminRole: actor.Role,
		Action:    action,
		Details: map[string]any{
			"car_id":       c.ID().String(),
			"brand":        c.Brand(),
			"model":        c.Model(),
			"plate_number": c.PlateNumber(),
			"price_cents":  c.PriceCents(),
			"driver":       c.Driver(),
		},
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("failed to record fleet audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func toCarDTO(c *carDomain.Car) CarDTO {
	return CarDTO{
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
