package admin

import (
	"context"

	"github.com/google/uuid"
)

// Admin is a back-office user allowed to operate the console. Accounts are
// provisioned out of band; the service only reads them during login.
type Admin struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// AdminRepository defines the read contract for admin accounts.
type AdminRepository interface {
	// FindByEmail retrieves an admin by email address.
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	// FindByID retrieves an admin by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
}
