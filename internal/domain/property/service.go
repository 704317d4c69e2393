package property

import (
	"time"

	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreatePropertyInput carries the raw fields needed to create a property
type CreatePropertyInput struct {
	ID            PropertyID
	PropertyType  Type
	OperationType OperationType
	AreaM2        decimal.Decimal
	Bedrooms      *int
	Bathrooms     *int
	Parking       int
	Amenities     []string
	Latitude      float64
	Longitude     float64
	Address       string
	District      string
	PhotoURLs     []string
	Now           time.Time
}

// Service exposes property factory and transition helpers. It is stateless;
// the region bounds come from injected configuration.
type Service struct {
	regionBounds valueobject.RegionBounds
}

// NewService creates a property service for the given service region
func NewService(regionBounds valueobject.RegionBounds) *Service {
	return &Service{regionBounds: regionBounds}
}

// CreatePropertyWithValidation builds the value objects and the property
// entity from raw input. On failure it returns a *shared.ValidationError
// listing every violated rule across all value objects, not just the first.
func (s *Service) CreatePropertyWithValidation(input CreatePropertyInput) (Property, error) {
	var rules shared.RuleCollector

	spec, err := valueobject.NewPropertySpec(input.AreaM2, input.Bedrooms, input.Bathrooms, input.Parking, input.Amenities)
	collectViolations(&rules, err)

	location, err := valueobject.NewGeoLocation(input.Latitude, input.Longitude, input.Address, input.District, s.regionBounds)
	collectViolations(&rules, err)

	media, err := valueobject.NewPhotoGallery(input.PhotoURLs, valueobject.PropertyMaxPhotos)
	collectViolations(&rules, err)

	if err := rules.Err("Property", "Invalid property"); err != nil {
		return Property{}, err
	}

	id := input.ID
	if id.IsZero() {
		id = NewPropertyID()
	}
	return NewProperty(id, input.PropertyType, input.OperationType, spec, location, media, input.Now)
}

func collectViolations(rules *shared.RuleCollector, err error) {
	if err == nil {
		return
	}
	if ve, ok := shared.AsValidationError(err); ok {
		for _, v := range ve.Violations {
			rules.Add(v)
		}
		return
	}
	rules.Add(err.Error())
}

// UpdatePhotos replaces the property's photo gallery
func (s *Service) UpdatePhotos(p Property, photoURLs []string, now time.Time) (Property, error) {
	media, err := valueobject.NewPhotoGallery(photoURLs, valueobject.PropertyMaxPhotos)
	if err != nil {
		return Property{}, err
	}
	return p.WithMedia(media, now)
}
