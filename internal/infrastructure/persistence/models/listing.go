package models

import (
	"time"

	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// ListingModel is the persistence model for the Listing domain entity.
// Price, contact and photos are stored as JSON documents. Publication
// timestamps are nullable and only set while the listing is or was live.
type ListingModel struct {
	ID          string  `gorm:"type:varchar(64);primary_key"`
	OwnerID     string  `gorm:"type:varchar(64);not null;index"`
	PropertyID  string  `gorm:"type:varchar(64);not null;index"`
	Title       string  `gorm:"type:varchar(100);not null"`
	Description string  `gorm:"type:text;not null"`
	Price       string  `gorm:"type:jsonb;not null"`
	Contact     *string `gorm:"type:jsonb"`
	Photos      string  `gorm:"type:jsonb;not null"`
	Status      string  `gorm:"type:varchar(20);not null;index"`
	PublishedAt *time.Time
	ExpiresAt   *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (ListingModel) TableName() string {
	return "listings"
}

// ListingModelFromDomain creates a persistence model from a domain Listing.
func ListingModelFromDomain(ownerID, propertyID string, l listing.Listing) (*ListingModel, error) {
	price, err := marshalColumn(l.Price().ToDTO())
	if err != nil {
		return nil, err
	}
	photos, err := marshalColumn(l.Media().ToDTO())
	if err != nil {
		return nil, err
	}

	m := &ListingModel{
		ID:          l.ID().String(),
		OwnerID:     ownerID,
		PropertyID:  propertyID,
		Title:       l.Title(),
		Description: l.Description(),
		Price:       price,
		Photos:      photos,
		Status:      string(l.Status()),
		PublishedAt: l.PublishedAt(),
		ExpiresAt:   l.ExpiresAt(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}

	if contact := l.ContactChannel(); contact != nil {
		raw, err := marshalColumn(contact.ToDTO())
		if err != nil {
			return nil, err
		}
		m.Contact = &raw
	}

	return m, nil
}

// ToDomain rebuilds the domain Listing from the persisted row.
func (m *ListingModel) ToDomain() (listing.Listing, error) {
	var priceDTO valueobject.PriceDTO
	if err := unmarshalColumn(m.Price, &priceDTO); err != nil {
		return listing.Listing{}, err
	}
	price, err := priceDTO.ToPrice()
	if err != nil {
		return listing.Listing{}, err
	}

	var photosDTO valueobject.PhotoGalleryDTO
	if err := unmarshalColumn(m.Photos, &photosDTO); err != nil {
		return listing.Listing{}, err
	}
	photos, err := photosDTO.ToPhotoGallery(valueobject.ListingMaxPhotos)
	if err != nil {
		return listing.Listing{}, err
	}

	var contact *valueobject.ContactChannel
	if m.Contact != nil {
		var dto valueobject.ContactChannelDTO
		if err := unmarshalColumn(*m.Contact, &dto); err != nil {
			return listing.Listing{}, err
		}
		channel, err := dto.ToContactChannel()
		if err != nil {
			return listing.Listing{}, err
		}
		contact = &channel
	}

	return listing.RestoreListing(listing.ListingID(m.ID), m.Title, m.Description,
		price, contact, photos, listing.Status(m.Status),
		m.CreatedAt, m.UpdatedAt, m.PublishedAt, m.ExpiresAt)
}
