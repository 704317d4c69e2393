package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/property"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/infrastructure/persistence/models"
)

// GormPropertyRepository implements property.Repository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id property.PropertyID) (property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return property.Property{}, shared.ErrNotFound
		}
		return property.Property{}, err
	}
	return model.ToDomain()
}

// FindAllForOwner finds every property owned by the account
func (r *GormPropertyRepository) FindAllForOwner(ctx context.Context, ownerID account.AccountID) ([]property.Property, error) {
	var propertyModels []models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("created_at DESC").
		Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]property.Property, 0, len(propertyModels))
	for i := range propertyModels {
		p, err := propertyModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, nil
}

// Create persists a new property for the owner
func (r *GormPropertyRepository) Create(ctx context.Context, ownerID account.AccountID, p property.Property) error {
	model, err := models.PropertyModelFromDomain(ownerID.String(), p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the new state of an existing property. Ownership never
// changes through an update.
func (r *GormPropertyRepository) Update(ctx context.Context, p property.Property) error {
	model, err := models.PropertyModelFromDomain("", p)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("id = ?", model.ID).
		Omit("owner_id", "created_at").
		Select("*").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id property.PropertyID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
