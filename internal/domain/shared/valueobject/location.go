package valueobject

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/inmolista/backend/internal/domain/shared"
)

// RegionBounds is the bounding box of the served geographic region.
// Coordinates outside the box are rejected at construction time.
type RegionBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// PeruBounds covers the national territory served in v1
var PeruBounds = RegionBounds{
	MinLat: -18.40,
	MaxLat: 0.10,
	MinLon: -81.40,
	MaxLon: -68.60,
}

// Contains reports whether the coordinate falls inside the region
func (b RegionBounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

const (
	maxAddressLength  = 200
	maxDistrictLength = 100
	earthRadiusKm     = 6371.0
)

// GeoLocation is a value object representing a point within the served
// region, together with its human-readable address. It is immutable.
type GeoLocation struct {
	latitude    float64
	longitude   float64
	address     string
	district    string
	countryCode string
}

// NewGeoLocation creates a validated location, collecting every violated
// rule before failing
func NewGeoLocation(lat, lon float64, address, district string, bounds RegionBounds) (GeoLocation, error) {
	var rules shared.RuleCollector

	if lat < -90 || lat > 90 {
		rules.Addf("latitude %.4f is outside the valid range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		rules.Addf("longitude %.4f is outside the valid range [-180, 180]", lon)
	}
	if lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 && !bounds.Contains(lat, lon) {
		rules.Addf("coordinates (%.4f, %.4f) are outside the service region", lat, lon)
	}

	address = strings.TrimSpace(address)
	if address == "" {
		rules.Add("address cannot be empty")
	} else if len(address) > maxAddressLength {
		rules.Addf("address cannot exceed %d characters", maxAddressLength)
	}

	district = strings.TrimSpace(district)
	if district == "" {
		rules.Add("district cannot be empty")
	} else if len(district) > maxDistrictLength {
		rules.Addf("district cannot exceed %d characters", maxDistrictLength)
	}

	if err := rules.Err("GeoLocation", "Invalid location"); err != nil {
		return GeoLocation{}, err
	}

	return GeoLocation{
		latitude:    lat,
		longitude:   lon,
		address:     address,
		district:    district,
		countryCode: "PE",
	}, nil
}

// Latitude returns the latitude in decimal degrees
func (g GeoLocation) Latitude() float64 {
	return g.latitude
}

// Longitude returns the longitude in decimal degrees
func (g GeoLocation) Longitude() float64 {
	return g.longitude
}

// Address returns the street address
func (g GeoLocation) Address() string {
	return g.address
}

// District returns the district name
func (g GeoLocation) District() string {
	return g.district
}

// CountryCode returns the ISO country code of the service region
func (g GeoLocation) CountryCode() string {
	return g.countryCode
}

// DistanceTo returns the great-circle distance to another location in
// kilometers (haversine formula)
func (g GeoLocation) DistanceTo(other GeoLocation) float64 {
	lat1 := g.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - g.latitude) * math.Pi / 180
	dLon := (other.longitude - g.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Equals returns true if both locations are structurally equal
func (g GeoLocation) Equals(other GeoLocation) bool {
	return g.latitude == other.latitude &&
		g.longitude == other.longitude &&
		g.address == other.address &&
		g.district == other.district &&
		g.countryCode == other.countryCode
}

// String returns "address, district"
func (g GeoLocation) String() string {
	return g.address + ", " + g.district
}

// geoLocationJSON matches the persisted location record shape
type geoLocationJSON struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Address     string  `json:"address"`
	District    string  `json:"district"`
	CountryCode string  `json:"countryCode"`
}

// MarshalJSON implements json.Marshaler
func (g GeoLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoLocationJSON{
		Lat:         g.latitude,
		Lon:         g.longitude,
		Address:     g.address,
		District:    g.district,
		CountryCode: g.countryCode,
	})
}

// UnmarshalJSON implements json.Unmarshaler via the validating factory
func (g *GeoLocation) UnmarshalJSON(data []byte) error {
	var v geoLocationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	loc, err := NewGeoLocation(v.Lat, v.Lon, v.Address, v.District, PeruBounds)
	if err != nil {
		return err
	}
	*g = loc
	return nil
}

// GeoLocationDTO is a data transfer object for persistence
type GeoLocationDTO struct {
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lon         float64 `json:"lon" validate:"min=-180,max=180"`
	Address     string  `json:"address" validate:"required,max=200"`
	District    string  `json:"district" validate:"required,max=100"`
	CountryCode string  `json:"countryCode" validate:"required,len=2"`
}

// ToDTO converts GeoLocation to GeoLocationDTO for storage
func (g GeoLocation) ToDTO() GeoLocationDTO {
	return GeoLocationDTO{
		Lat:         g.latitude,
		Lon:         g.longitude,
		Address:     g.address,
		District:    g.district,
		CountryCode: g.countryCode,
	}
}

// ToGeoLocation converts GeoLocationDTO back to GeoLocation
func (dto GeoLocationDTO) ToGeoLocation() (GeoLocation, error) {
	return NewGeoLocation(dto.Lat, dto.Lon, dto.Address, dto.District, PeruBounds)
}
