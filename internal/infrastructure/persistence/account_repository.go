package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements account.Repository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id account.AccountID) (account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Account{}, shared.ErrNotFound
		}
		return account.Account{}, err
	}
	return model.ToDomain()
}

// FindByEmail finds an account by its normalized email
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return account.Account{}, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Account{}, shared.ErrNotFound
		}
		return account.Account{}, err
	}
	return model.ToDomain()
}

// Create persists a new account
func (r *GormAccountRepository) Create(ctx context.Context, acc account.Account) error {
	model, err := models.AccountModelFromDomain(acc)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the new state of an existing account
func (r *GormAccountRepository) Update(ctx context.Context, acc account.Account) error {
	model, err := models.AccountModelFromDomain(acc)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", model.ID).
		Select("*").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id account.AccountID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
