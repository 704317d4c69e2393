package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/property"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/infrastructure/persistence/models"
)

// GormListingRepository implements listing.Repository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id listing.ListingID) (listing.Listing, error) {
	var model models.ListingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return listing.Listing{}, shared.ErrNotFound
		}
		return listing.Listing{}, err
	}
	return model.ToDomain()
}

// FindAllForOwner finds every listing owned by the account
func (r *GormListingRepository) FindAllForOwner(ctx context.Context, ownerID account.AccountID) ([]listing.Listing, error) {
	var listingModels []models.ListingModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("created_at DESC").
		Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return toDomainListings(listingModels)
}

// FindActiveByFilter finds searchable listings matching the filter. Status
// and property attributes narrow the query in SQL; price and radius are
// value-object concerns and are applied in memory.
func (r *GormListingRepository) FindActiveByFilter(ctx context.Context, filter listing.SearchFilter, now time.Time) ([]listing.Listing, error) {
	query := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("listings.status = ?", string(listing.StatusActive)).
		Where("listings.expires_at >= ?", now)

	if filter.PropertyType != "" || filter.OperationType != "" {
		query = query.Joins("JOIN properties ON properties.id = listings.property_id")
		if filter.PropertyType != "" {
			query = query.Where("properties.property_type = ?", string(filter.PropertyType))
		}
		if filter.OperationType != "" {
			query = query.Where("properties.operation_type = ?", string(filter.OperationType))
		}
	}

	var listingModels []models.ListingModel
	if err := query.Order("listings.published_at DESC").Find(&listingModels).Error; err != nil {
		return nil, err
	}

	listings, err := toDomainListings(listingModels)
	if err != nil {
		return nil, err
	}
	return r.applyDomainFilters(ctx, listings, filter)
}

// applyDomainFilters narrows the candidate set by price range and radius
func (r *GormListingRepository) applyDomainFilters(ctx context.Context, listings []listing.Listing, filter listing.SearchFilter) ([]listing.Listing, error) {
	matched := make([]listing.Listing, 0, len(listings))
	for _, l := range listings {
		if filter.MinPrice != nil {
			below, err := l.Price().LessThan(*filter.MinPrice)
			if err != nil || below {
				continue
			}
		}
		if filter.MaxPrice != nil {
			above, err := l.Price().GreaterThan(*filter.MaxPrice)
			if err != nil || above {
				continue
			}
		}
		if filter.Center != nil && filter.RadiusKm > 0 {
			ok, err := r.withinRadius(ctx, l, filter)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, l)
	}
	return matched, nil
}

// withinRadius loads the backing property and checks its distance to the
// filter center
func (r *GormListingRepository) withinRadius(ctx context.Context, l listing.Listing, filter listing.SearchFilter) (bool, error) {
	var model models.ListingModel
	if err := r.db.WithContext(ctx).
		Select("property_id").
		First(&model, "id = ?", l.ID().String()).Error; err != nil {
		return false, err
	}

	var propertyModel models.PropertyModel
	if err := r.db.WithContext(ctx).First(&propertyModel, "id = ?", model.PropertyID).Error; err != nil {
		return false, err
	}
	prop, err := propertyModel.ToDomain()
	if err != nil {
		return false, err
	}

	return prop.Location().DistanceTo(*filter.Center) <= filter.RadiusKm, nil
}

// FindExpiredCandidates finds active listings whose expiration has passed
func (r *GormListingRepository) FindExpiredCandidates(ctx context.Context, now time.Time) ([]listing.Listing, error) {
	var listingModels []models.ListingModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", string(listing.StatusActive), now).
		Order("expires_at ASC").
		Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return toDomainListings(listingModels)
}

// Create persists a new listing for the owner against a property
func (r *GormListingRepository) Create(ctx context.Context, ownerID account.AccountID, propertyID property.PropertyID, l listing.Listing) error {
	model, err := models.ListingModelFromDomain(ownerID.String(), propertyID.String(), l)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the new state of an existing listing. Ownership and the
// backing property never change through an update.
func (r *GormListingRepository) Update(ctx context.Context, l listing.Listing) error {
	model, err := models.ListingModelFromDomain("", "", l)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("id = ?", model.ID).
		Omit("owner_id", "property_id", "created_at").
		Select("*").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a listing
func (r *GormListingRepository) Delete(ctx context.Context, id listing.ListingID) error {
	result := r.db.WithContext(ctx).Delete(&models.ListingModel{}, "id = ?", id.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainListings(listingModels []models.ListingModel) ([]listing.Listing, error) {
	listings := make([]listing.Listing, 0, len(listingModels))
	for i := range listingModels {
		l, err := listingModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}
