package property

import (
	"context"

	"github.com/inmolista/backend/internal/domain/account"
)

// Repository defines the persistence port for properties
type Repository interface {
	// FindByID finds a property by ID
	FindByID(ctx context.Context, id PropertyID) (Property, error)

	// FindAllForOwner finds every property owned by the account
	FindAllForOwner(ctx context.Context, ownerID account.AccountID) ([]Property, error)

	// Create persists a new property for the owner
	Create(ctx context.Context, ownerID account.AccountID, p Property) error

	// Update persists the new state of an existing property
	Update(ctx context.Context, p Property) error

	// Delete removes a property. Deletion is owned by the persistence
	// layer, never by the domain core.
	Delete(ctx context.Context, id PropertyID) error
}
