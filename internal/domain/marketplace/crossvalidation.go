package marketplace

import (
	"fmt"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/property"
)

// Cross-entity validation: relationships between already-validated entities.
// Entity-local rules are never re-checked here; the factories own those.

// validateContactConsistency checks that a listing's contact phone matches
// the account's phone, digit-for-digit. The check only applies when both
// phones are present: a listing contact may legitimately differ when the
// account has no phone on file.
func validateContactConsistency(acc account.Account, l listing.Listing) []string {
	listingContact := l.ContactChannel()
	accountContact := acc.ContactChannel()
	if listingContact == nil || accountContact == nil {
		return nil
	}
	if listingContact.Phone().SameDigits(accountContact.Phone()) {
		return nil
	}
	return []string{"listing contact phone does not match the account's verified phone"}
}

// validatePriceSanity bounds the asking price against the property it
// advertises. Land gets an absolute floor; every other type gets a
// per-square-meter floor and ceiling. Bounds apply to the amount in the
// listing's own currency.
func validatePriceSanity(l listing.Listing, prop property.Property, cfg Config) []string {
	amount := l.Price().Amount()

	if prop.PropertyType() == property.TypeLand {
		if amount.LessThan(cfg.LandMinTotalPrice) {
			return []string{fmt.Sprintf("land listings must be priced at least %s, got %s",
				cfg.LandMinTotalPrice.String(), amount.String())}
		}
		return nil
	}

	area := prop.Spec().AreaM2()
	if !area.IsPositive() {
		// Factories guarantee a positive area; reaching this is a bug.
		return []string{"property area is not positive"}
	}

	perM2 := amount.DivRound(area, 2)
	var violations []string
	if perM2.LessThan(cfg.MinPricePerM2) {
		violations = append(violations, fmt.Sprintf(
			"price of %s per m² is below the minimum of %s per m²",
			perM2.String(), cfg.MinPricePerM2.String()))
	}
	if perM2.GreaterThan(cfg.MaxPricePerM2) {
		violations = append(violations, fmt.Sprintf(
			"price of %s per m² is above the maximum of %s per m²",
			perM2.String(), cfg.MaxPricePerM2.String()))
	}
	return violations
}

// validateListingAgainstProperty runs every cross-entity rule for a new
// listing and returns the combined violation list
func validateListingAgainstProperty(acc account.Account, l listing.Listing, prop property.Property, cfg Config) []string {
	var violations []string
	violations = append(violations, validateContactConsistency(acc, l)...)
	violations = append(violations, validatePriceSanity(l, prop, cfg)...)
	return violations
}
