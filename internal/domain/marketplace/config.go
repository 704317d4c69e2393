package marketplace

import (
	"time"

	"github.com/inmolista/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Config carries every business constant the orchestrator and the domain
// services need. It is injected rather than hard-coded so tests stay
// deterministic and markets can be tuned without code changes.
type Config struct {
	// ListingFee is the one-time fee a listing payment must match exactly
	ListingFee valueobject.Price

	// ListingDuration is the publication window set on activation
	ListingDuration time.Duration

	// PaymentWindow is how long a payment may stay unsettled
	PaymentWindow time.Duration

	// NewUserWindow is the account age below which a user counts as new
	NewUserWindow time.Duration

	// RegionBounds is the served geographic region
	RegionBounds valueobject.RegionBounds

	// LandMinTotalPrice is the absolute price floor for land listings
	LandMinTotalPrice decimal.Decimal

	// MinPricePerM2 / MaxPricePerM2 bound the per-unit-area price for
	// non-land listings
	MinPricePerM2 decimal.Decimal
	MaxPricePerM2 decimal.Decimal
}

// DefaultConfig returns the production configuration
func DefaultConfig() Config {
	return Config{
		ListingFee:        valueobject.MustNewPrice(decimal.NewFromInt(19), valueobject.PEN),
		ListingDuration:   30 * 24 * time.Hour,
		PaymentWindow:     24 * time.Hour,
		NewUserWindow:     7 * 24 * time.Hour,
		RegionBounds:      valueobject.PeruBounds,
		LandMinTotalPrice: decimal.NewFromInt(10_000),
		MinPricePerM2:     decimal.NewFromInt(10),
		MaxPricePerM2:     decimal.NewFromInt(50_000),
	}
}
