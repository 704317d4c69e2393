package account

import "context"

// Repository defines the persistence port for accounts
type Repository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id AccountID) (Account, error)

	// FindByEmail finds an account by its normalized email
	FindByEmail(ctx context.Context, email string) (Account, error)

	// Create persists a new account
	Create(ctx context.Context, acc Account) error

	// Update persists the new state of an existing account
	Update(ctx context.Context, acc Account) error

	// Delete removes an account. Deletion is owned by the persistence
	// layer, never by the domain core.
	Delete(ctx context.Context, id AccountID) error
}
