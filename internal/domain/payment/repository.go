package payment

import (
	"context"
	"time"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/listing"
)

// Repository defines the persistence port for payments
type Repository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id PaymentID) (Payment, error)

	// FindByReferenceCode finds a payment by its human reference
	FindByReferenceCode(ctx context.Context, referenceCode string) (Payment, error)

	// FindAllForOwner finds every payment made by the account
	FindAllForOwner(ctx context.Context, ownerID account.AccountID) ([]Payment, error)

	// FindExpiredCandidates finds non-terminal payments whose window has
	// closed, for the periodic expiry sweep
	FindExpiredCandidates(ctx context.Context, now time.Time) ([]Payment, error)

	// Create persists a new payment made by the owner for a listing
	Create(ctx context.Context, ownerID account.AccountID, listingID listing.ListingID, p Payment) error

	// Update persists the new state of an existing payment
	Update(ctx context.Context, p Payment) error
}
