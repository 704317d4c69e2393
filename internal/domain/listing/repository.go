package listing

import (
	"context"
	"time"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/property"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// SearchFilter narrows active-listing queries. Zero-valued fields are
// ignored.
type SearchFilter struct {
	OperationType property.OperationType
	PropertyType  property.Type
	MinPrice      *valueobject.Price
	MaxPrice      *valueobject.Price
	// Geographic radius filter: both must be set together
	Center   *valueobject.GeoLocation
	RadiusKm float64
}

// Repository defines the persistence port for listings
type Repository interface {
	// FindByID finds a listing by ID
	FindByID(ctx context.Context, id ListingID) (Listing, error)

	// FindAllForOwner finds every listing owned by the account
	FindAllForOwner(ctx context.Context, ownerID account.AccountID) ([]Listing, error)

	// FindActiveByFilter finds searchable listings matching the filter
	FindActiveByFilter(ctx context.Context, filter SearchFilter, now time.Time) ([]Listing, error)

	// FindExpiredCandidates finds active listings whose expiration has
	// passed, for the periodic expiry sweep
	FindExpiredCandidates(ctx context.Context, now time.Time) ([]Listing, error)

	// Create persists a new listing for the owner against a property
	Create(ctx context.Context, ownerID account.AccountID, propertyID property.PropertyID, l Listing) error

	// Update persists the new state of an existing listing
	Update(ctx context.Context, l Listing) error

	// Delete removes a listing. Deletion is owned by the persistence
	// layer, never by the domain core.
	Delete(ctx context.Context, id ListingID) error
}
