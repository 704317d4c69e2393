package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// PropertyID identifies a property
type PropertyID string

// NewPropertyID generates a new property ID
func NewPropertyID() PropertyID {
	return PropertyID(uuid.NewString())
}

// ParsePropertyID validates a raw ID string
func ParsePropertyID(raw string) (PropertyID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	return PropertyID(raw), nil
}

// String returns the raw ID value
func (id PropertyID) String() string {
	return string(id)
}

// IsZero returns true for the empty ID
func (id PropertyID) IsZero() bool {
	return id == ""
}

// Type classifies the physical asset
type Type string

const (
	TypeHouse           Type = "house"
	TypeApartment       Type = "apartment"
	TypeLand            Type = "land"
	TypeOffice          Type = "office"
	TypeCommercialLocal Type = "commercial_local"
)

// IsValid checks if the type is a valid property Type
func (t Type) IsValid() bool {
	switch t {
	case TypeHouse, TypeApartment, TypeLand, TypeOffice, TypeCommercialLocal:
		return true
	}
	return false
}

// IsResidential returns true for types people live in
func (t Type) IsResidential() bool {
	return t == TypeHouse || t == TypeApartment
}

// RequiresRoomCounts returns true when bedroom and bathroom counts are
// mandatory for publication
func (t Type) RequiresRoomCounts() bool {
	return t.IsResidential()
}

// Label returns the user-facing label for the type
func (t Type) Label() string {
	switch t {
	case TypeHouse:
		return "Casa"
	case TypeApartment:
		return "Departamento"
	case TypeLand:
		return "Terreno"
	case TypeOffice:
		return "Oficina"
	case TypeCommercialLocal:
		return "Local comercial"
	}
	return string(t)
}

// String returns the string representation of the type
func (t Type) String() string {
	return string(t)
}

// OperationType is the transaction kind offered for the property
type OperationType string

const (
	OperationSale   OperationType = "sale"
	OperationRental OperationType = "rental"
)

// IsValid checks if the operation type is valid
func (o OperationType) IsValid() bool {
	return o == OperationSale || o == OperationRental
}

// Label returns the user-facing label for the operation
func (o OperationType) Label() string {
	switch o {
	case OperationSale:
		return "Venta"
	case OperationRental:
		return "Alquiler"
	}
	return string(o)
}

// String returns the string representation of the operation
func (o OperationType) String() string {
	return string(o)
}

// Property represents the physical real-estate asset, reusable across
// multiple listings. It is immutable: every transition returns a new
// instance.
type Property struct {
	id            PropertyID
	propertyType  Type
	operationType OperationType
	spec          valueobject.PropertySpec
	location      valueobject.GeoLocation
	media         valueobject.PhotoGallery
	available     bool
	updatedAt     time.Time
}

// NewProperty creates a validated property, collecting every violated rule
// before failing. New properties start available.
func NewProperty(id PropertyID, propertyType Type, operationType OperationType,
	spec valueobject.PropertySpec, location valueobject.GeoLocation,
	media valueobject.PhotoGallery, now time.Time) (Property, error) {

	var rules shared.RuleCollector

	if id.IsZero() {
		rules.Add("property ID cannot be empty")
	}
	if !propertyType.IsValid() {
		rules.Addf("property type %q is not valid", string(propertyType))
	}
	if !operationType.IsValid() {
		rules.Addf("operation type %q is not valid", string(operationType))
	}
	if media.Count() > valueobject.PropertyMaxPhotos {
		rules.Addf("property media cannot exceed %d photos", valueobject.PropertyMaxPhotos)
	}

	// Land and commercial types carry no room counts; those live on
	// residential specifications only.
	if propertyType.IsValid() && !propertyType.RequiresRoomCounts() {
		if spec.Bedrooms() != nil || spec.Bathrooms() != nil {
			rules.Addf("%s properties must not declare room counts", propertyType.Label())
		}
	}

	if err := rules.Err("Property", "Invalid property"); err != nil {
		return Property{}, err
	}

	return Property{
		id:            id,
		propertyType:  propertyType,
		operationType: operationType,
		spec:          spec,
		location:      location,
		media:         media,
		available:     true,
		updatedAt:     now,
	}, nil
}

// RestoreProperty rebuilds a property from persisted state. Used by the
// persistence adapter only.
func RestoreProperty(id PropertyID, propertyType Type, operationType OperationType,
	spec valueobject.PropertySpec, location valueobject.GeoLocation,
	media valueobject.PhotoGallery, available bool, updatedAt time.Time) (Property, error) {

	p, err := NewProperty(id, propertyType, operationType, spec, location, media, updatedAt)
	if err != nil {
		return Property{}, err
	}
	p.available = available
	return p, nil
}

// ID returns the property ID
func (p Property) ID() PropertyID {
	return p.id
}

// PropertyType returns the asset type
func (p Property) PropertyType() Type {
	return p.propertyType
}

// OperationType returns the transaction kind
func (p Property) OperationType() OperationType {
	return p.operationType
}

// Spec returns the physical specification
func (p Property) Spec() valueobject.PropertySpec {
	return p.spec
}

// Location returns the geographic location
func (p Property) Location() valueobject.GeoLocation {
	return p.location
}

// Media returns the photo gallery
func (p Property) Media() valueobject.PhotoGallery {
	return p.media
}

// IsAvailable returns true if the property can be listed
func (p Property) IsAvailable() bool {
	return p.available
}

// UpdatedAt returns the last update timestamp
func (p Property) UpdatedAt() time.Time {
	return p.updatedAt
}

// ValidateForPublication checks the rules a property must satisfy before a
// listing for it goes live. All violations are collected.
func (p Property) ValidateForPublication() error {
	var rules shared.RuleCollector

	if !p.available {
		rules.Add("property is not available")
	}
	if p.propertyType.RequiresRoomCounts() && !p.spec.HasRoomCounts() {
		rules.Addf("%s properties require both bedroom and bathroom counts", p.propertyType.Label())
	}
	if p.media.IsEmpty() {
		rules.Add("property needs at least one photo to be published")
	}

	return rules.Err("Property", "Property is not ready for publication")
}

// MarkUnavailable returns a new property that can no longer be listed
func (p Property) MarkUnavailable(now time.Time) Property {
	updated := p
	updated.available = false
	updated.updatedAt = now
	return updated
}

// MarkAvailable returns a new property that can be listed again
func (p Property) MarkAvailable(now time.Time) Property {
	updated := p
	updated.available = true
	updated.updatedAt = now
	return updated
}

// WithSpec returns a new property with an updated specification
func (p Property) WithSpec(spec valueobject.PropertySpec, now time.Time) (Property, error) {
	return RestoreProperty(p.id, p.propertyType, p.operationType, spec, p.location, p.media, p.available, now)
}

// WithMedia returns a new property with an updated photo gallery
func (p Property) WithMedia(media valueobject.PhotoGallery, now time.Time) (Property, error) {
	return RestoreProperty(p.id, p.propertyType, p.operationType, p.spec, p.location, media, p.available, now)
}

// WithLocation returns a new property with an updated location
func (p Property) WithLocation(location valueobject.GeoLocation, now time.Time) (Property, error) {
	return RestoreProperty(p.id, p.propertyType, p.operationType, p.spec, location, p.media, p.available, now)
}
