package models

import (
	"time"

	"github.com/inmolista/backend/internal/domain/property"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// PropertyModel is the persistence model for the Property domain entity.
// Spec, location and photos are stored as JSON documents.
type PropertyModel struct {
	ID            string `gorm:"type:varchar(64);primary_key"`
	OwnerID       string `gorm:"type:varchar(64);not null;index"`
	PropertyType  string `gorm:"type:varchar(20);not null"`
	OperationType string `gorm:"type:varchar(20);not null"`
	Spec          string `gorm:"type:jsonb;not null"`
	Location      string `gorm:"type:jsonb;not null"`
	Photos        string `gorm:"type:jsonb;not null"`
	Available     bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// PropertyModelFromDomain creates a persistence model from a domain Property.
func PropertyModelFromDomain(ownerID string, p property.Property) (*PropertyModel, error) {
	spec, err := marshalColumn(p.Spec().ToDTO())
	if err != nil {
		return nil, err
	}
	location, err := marshalColumn(p.Location().ToDTO())
	if err != nil {
		return nil, err
	}
	photos, err := marshalColumn(p.Media().ToDTO())
	if err != nil {
		return nil, err
	}

	return &PropertyModel{
		ID:            p.ID().String(),
		OwnerID:       ownerID,
		PropertyType:  string(p.PropertyType()),
		OperationType: string(p.OperationType()),
		Spec:          spec,
		Location:      location,
		Photos:        photos,
		Available:     p.IsAvailable(),
		UpdatedAt:     p.UpdatedAt(),
	}, nil
}

// ToDomain rebuilds the domain Property from the persisted row.
func (m *PropertyModel) ToDomain() (property.Property, error) {
	var specDTO valueobject.PropertySpecDTO
	if err := unmarshalColumn(m.Spec, &specDTO); err != nil {
		return property.Property{}, err
	}
	spec, err := specDTO.ToPropertySpec()
	if err != nil {
		return property.Property{}, err
	}

	var locationDTO valueobject.GeoLocationDTO
	if err := unmarshalColumn(m.Location, &locationDTO); err != nil {
		return property.Property{}, err
	}
	location, err := locationDTO.ToGeoLocation()
	if err != nil {
		return property.Property{}, err
	}

	var photosDTO valueobject.PhotoGalleryDTO
	if err := unmarshalColumn(m.Photos, &photosDTO); err != nil {
		return property.Property{}, err
	}
	photos, err := photosDTO.ToPhotoGallery(valueobject.PropertyMaxPhotos)
	if err != nil {
		return property.Property{}, err
	}

	return property.RestoreProperty(property.PropertyID(m.ID),
		property.Type(m.PropertyType), property.OperationType(m.OperationType),
		spec, location, photos, m.Available, m.UpdatedAt)
}
