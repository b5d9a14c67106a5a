package car

import (
	"context"

	"github.com/google/uuid"
)

// Option is an (id, model) pair for the booking form's vehicle dropdown.
type Option struct {
	ID    uuid.UUID `json:"id"`
	Model string    `json:"model"`
}

// CarRepository defines the persistence contract for fleet vehicles.
type CarRepository interface {
	// FindByID retrieves a car by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Car, error)

	// ListOptions returns (id, model) pairs for all vehicles.
	ListOptions(ctx context.Context) ([]Option, error)

	// Save persists a new car.
	Save(ctx context.Context, car *Car) error

	// Update persists changes to an existing car with optimistic locking.
	Update(ctx context.Context, car *Car) error
}
