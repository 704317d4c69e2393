package valueobject

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	maxAreaM2         = 100_000
	maxRoomCount      = 20
	maxParkingSpaces  = 50
	maxAmenities      = 30
	maxAmenityLength  = 50
	minAreaPerBedroom = 6 // m² - anything tighter is not a habitable room
)

// PropertySpec is a value object describing the physical characteristics of
// a property: built area, room counts, parking and amenities. Room counts
// are optional because land and commercial types carry none. Immutable.
type PropertySpec struct {
	areaM2    decimal.Decimal
	bedrooms  *int
	bathrooms *int
	parking   int
	amenities []string
}

// NewPropertySpec creates a validated physical specification, collecting
// every violated rule before failing
func NewPropertySpec(areaM2 decimal.Decimal, bedrooms, bathrooms *int, parking int, amenities []string) (PropertySpec, error) {
	var rules shared.RuleCollector

	if !areaM2.IsPositive() {
		rules.Add("area must be greater than zero")
	} else if areaM2.GreaterThan(decimal.NewFromInt(maxAreaM2)) {
		rules.Addf("area cannot exceed %d m²", maxAreaM2)
	}

	if bedrooms != nil && (*bedrooms < 0 || *bedrooms > maxRoomCount) {
		rules.Addf("bedroom count must be between 0 and %d", maxRoomCount)
	}
	if bathrooms != nil && (*bathrooms < 0 || *bathrooms > maxRoomCount) {
		rules.Addf("bathroom count must be between 0 and %d", maxRoomCount)
	}
	if parking < 0 || parking > maxParkingSpaces {
		rules.Addf("parking count must be between 0 and %d", maxParkingSpaces)
	}

	// Cross-field plausibility
	if bedrooms != nil && bathrooms != nil && *bathrooms > *bedrooms+2 {
		rules.Add("bathroom count cannot exceed bedroom count by more than 2")
	}
	if bedrooms != nil && *bedrooms > 0 && areaM2.IsPositive() {
		minArea := decimal.NewFromInt(int64(*bedrooms) * minAreaPerBedroom)
		if areaM2.LessThan(minArea) {
			rules.Addf("area of %s m² is implausible for %d bedrooms (minimum %d m² per bedroom)",
				areaM2.String(), *bedrooms, minAreaPerBedroom)
		}
	}

	cleaned, amenityViolations := cleanAmenities(amenities)
	for _, v := range amenityViolations {
		rules.Add(v)
	}

	if err := rules.Err("PropertySpec", "Invalid property specification"); err != nil {
		return PropertySpec{}, err
	}

	return PropertySpec{
		areaM2:    areaM2,
		bedrooms:  copyIntPtr(bedrooms),
		bathrooms: copyIntPtr(bathrooms),
		parking:   parking,
		amenities: cleaned,
	}, nil
}

func cleanAmenities(amenities []string) ([]string, []string) {
	var violations []string
	seen := make(map[string]bool, len(amenities))
	cleaned := make([]string, 0, len(amenities))
	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a == "" {
			violations = append(violations, "amenity cannot be empty")
			continue
		}
		if len(a) > maxAmenityLength {
			violations = append(violations, "amenity "+a[:maxAmenityLength]+"... exceeds the maximum length")
			continue
		}
		key := strings.ToLower(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, a)
	}
	if len(cleaned) > maxAmenities {
		violations = append(violations, "amenity list cannot exceed the maximum size")
	}
	sort.Strings(cleaned)
	return cleaned, violations
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AreaM2 returns the area in square meters
func (s PropertySpec) AreaM2() decimal.Decimal {
	return s.areaM2
}

// Bedrooms returns the bedroom count, nil when not applicable
func (s PropertySpec) Bedrooms() *int {
	return copyIntPtr(s.bedrooms)
}

// Bathrooms returns the bathroom count, nil when not applicable
func (s PropertySpec) Bathrooms() *int {
	return copyIntPtr(s.bathrooms)
}

// Parking returns the parking space count
func (s PropertySpec) Parking() int {
	return s.parking
}

// Amenities returns a copy of the amenity list, sorted
func (s PropertySpec) Amenities() []string {
	out := make([]string, len(s.amenities))
	copy(out, s.amenities)
	return out
}

// HasRoomCounts returns true if both bedroom and bathroom counts are set
func (s PropertySpec) HasRoomCounts() bool {
	return s.bedrooms != nil && s.bathrooms != nil
}

// Equals returns true if both specifications are structurally equal
func (s PropertySpec) Equals(other PropertySpec) bool {
	if !s.areaM2.Equal(other.areaM2) || s.parking != other.parking {
		return false
	}
	if !intPtrEqual(s.bedrooms, other.bedrooms) || !intPtrEqual(s.bathrooms, other.bathrooms) {
		return false
	}
	if len(s.amenities) != len(other.amenities) {
		return false
	}
	for i, a := range s.amenities {
		if other.amenities[i] != a {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// propertySpecJSON matches the persisted specs record shape
type propertySpecJSON struct {
	Area      string   `json:"area"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Parking   int      `json:"parking"`
	Amenities []string `json:"amenities"`
}

// MarshalJSON implements json.Marshaler
func (s PropertySpec) MarshalJSON() ([]byte, error) {
	amenities := s.amenities
	if amenities == nil {
		amenities = []string{}
	}
	return json.Marshal(propertySpecJSON{
		Area:      s.areaM2.String(),
		Bedrooms:  s.bedrooms,
		Bathrooms: s.bathrooms,
		Parking:   s.parking,
		Amenities: amenities,
	})
}

// UnmarshalJSON implements json.Unmarshaler via the validating factory
func (s *PropertySpec) UnmarshalJSON(data []byte) error {
	var v propertySpecJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	area, err := decimal.NewFromString(v.Area)
	if err != nil {
		return shared.NewValidationError("PropertySpec", "Invalid property specification",
			[]string{"area is not a valid number"})
	}
	spec, err := NewPropertySpec(area, v.Bedrooms, v.Bathrooms, v.Parking, v.Amenities)
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

// PropertySpecDTO is a data transfer object for persistence
type PropertySpecDTO struct {
	Area      string   `json:"area" validate:"required"`
	Bedrooms  *int     `json:"bedrooms,omitempty" validate:"omitempty,min=0,max=20"`
	Bathrooms *int     `json:"bathrooms,omitempty" validate:"omitempty,min=0,max=20"`
	Parking   int      `json:"parking" validate:"min=0,max=50"`
	Amenities []string `json:"amenities" validate:"max=30,dive,max=50"`
}

// ToDTO converts PropertySpec to PropertySpecDTO for storage
func (s PropertySpec) ToDTO() PropertySpecDTO {
	amenities := s.Amenities()
	if amenities == nil {
		amenities = []string{}
	}
	return PropertySpecDTO{
		Area:      s.areaM2.String(),
		Bedrooms:  s.Bedrooms(),
		Bathrooms: s.Bathrooms(),
		Parking:   s.parking,
		Amenities: amenities,
	}
}

// ToPropertySpec converts PropertySpecDTO back to PropertySpec
func (dto PropertySpecDTO) ToPropertySpec() (PropertySpec, error) {
	area, err := decimal.NewFromString(dto.Area)
	if err != nil {
		return PropertySpec{}, shared.NewValidationError("PropertySpec", "Invalid property specification",
			[]string{"area is not a valid number"})
	}
	return NewPropertySpec(area, dto.Bedrooms, dto.Bathrooms, dto.Parking, dto.Amenities)
}
