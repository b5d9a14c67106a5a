package car

import (
	"time"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	"github.com/google/uuid"
)

// Car is the aggregate root for a fleet vehicle.
type Car struct {
	id           uuid.UUID
	brand        string
	model        string
	carType      string
	transmission string
	priceCents   int64
	capacity     int
	luggage      int
	doors        int
	features     string
	description  string
	plateNumber  string
	driver       string
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewCar creates a new fleet vehicle with validated fields.
func NewCar(
	brand, model, carType, transmission string,
	priceCents int64,
	capacity, luggage, doors int,
	features, description, plateNumber, driver string,
) (*Car, error) {
	if brand == "" {
		return nil, domain.NewValidationError("brand is required")
	}
	if model == "" {
		return nil, domain.NewValidationError("model is required")
	}
	if plateNumber == "" {
		return nil, domain.NewValidationError("plate number is required")
	}
	if priceCents < 0 {
		return nil, domain.NewValidationError("price cannot be negative")
	}

	now := time.Now().UTC()
	return &Car{
		id:           uuid.New(),
		brand:        brand,
		model:        model,
		carType:      carType,
		transmission: transmission,
		priceCents:   priceCents,
		capacity:     capacity,
		luggage:      luggage,
		doors:        doors,
		features:     features,
		description:  description,
		plateNumber:  plateNumber,
		driver:       driver,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Car from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	brand, model, carType, transmission string,
	priceCents int64,
	capacity, luggage, doors int,
	features, description, plateNumber, driver string,
	version int64,
	createdAt, updatedAt time.Time,
) *Car {
	return &Car{
		id:           id,
		brand:        brand,
		model:        model,
		carType:      carType,
		transmission: transmission,
		priceCents:   priceCents,
		capacity:     capacity,
		luggage:      luggage,
		doors:        doors,
		features:     features,
		description:  description,
		plateNumber:  plateNumber,
		driver:       driver,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the car's unique identifier.
func (c *Car) ID() uuid.UUID { return c.id }

// Brand returns the manufacturer brand.
func (c *Car) Brand() string { return c.brand }

// Model returns the vehicle model.
func (c *Car) Model() string { return c.model }

// Type returns the vehicle category (sedan, van, SUV, ...).
func (c *Car) Type() string { return c.carType }

// Transmission returns "manual" or "automatic".
func (c *Car) Transmission() string { return c.transmission }

// PriceCents returns the daily rental price in cents.
func (c *Car) PriceCents() int64 { return c.priceCents }

// Capacity returns the passenger capacity.
func (c *Car) Capacity() int { return c.capacity }

// Luggage returns the luggage capacity.
func (c *Car) Luggage() int { return c.luggage }

// Doors returns the number of doors.
func (c *Car) Doors() int { return c.doors }

// Features returns the comma-separated feature list.
func (c *Car) Features() string { return c.features }

// Description returns the free-text description.
func (c *Car) Description() string { return c.description }

// PlateNumber returns the registration plate number.
func (c *Car) PlateNumber() string { return c.plateNumber }

// Driver returns the assigned driver's name.
func (c *Car) Driver() string { return c.driver }

// Version returns the entity version for optimistic locking.
func (c *Car) Version() int64 { return c.version }

// CreatedAt returns the creation timestamp.
func (c *Car) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (c *Car) UpdatedAt() time.Time { return c.updatedAt }

// UpdateDetails replaces the mutable vehicle attributes.
func (c *Car) UpdateDetails(
	brand, model, carType, transmission string,
	priceCents int64,
	capacity, luggage, doors int,
	features, description, plateNumber, driver string,
) error {
	if brand == "" {
		return domain.NewValidationError("brand is required")
	}
	if model == "" {
		return domain.NewValidationError("model is required")
	}
	if plateNumber == "" {
		return domain.NewValidationError("plate number is required")
	}
	if priceCents < 0 {
		return domain.NewValidationError("price cannot be negative")
	}
	c.brand = brand
	c.model = model
	c.carType = carType
	c.transmission = transmission
	c.priceCents = priceCents
	c.capacity = capacity
	c.luggage = luggage
	c.doors = doors
	c.features = features
	c.description = description
	c.plateNumber = plateNumber
	c.driver = driver
	c.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (c *Car) IncrementVersion() {
	c.version++
	c.updatedAt = time.Now().UTC()
}
