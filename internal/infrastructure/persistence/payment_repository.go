package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/payment"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id payment.PaymentID) (payment.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payment.Payment{}, shared.ErrNotFound
		}
		return payment.Payment{}, err
	}
	return model.ToDomain()
}

// FindByReferenceCode finds a payment by its human reference
func (r *GormPaymentRepository) FindByReferenceCode(ctx context.Context, referenceCode string) (payment.Payment, error) {
	referenceCode = strings.ToUpper(strings.TrimSpace(referenceCode))
	if referenceCode == "" {
		return payment.Payment{}, shared.NewDomainError("INVALID_REFERENCE", "Reference code cannot be empty")
	}
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "reference_code = ?", referenceCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payment.Payment{}, shared.ErrNotFound
		}
		return payment.Payment{}, err
	}
	return model.ToDomain()
}

// FindAllForOwner finds every payment made by the account
func (r *GormPaymentRepository) FindAllForOwner(ctx context.Context, ownerID account.AccountID) ([]payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels)
}

// FindExpiredCandidates finds non-terminal payments whose window has closed
func (r *GormPaymentRepository) FindExpiredCandidates(ctx context.Context, now time.Time) ([]payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND expires_at IS NOT NULL AND expires_at < ?",
			[]string{string(payment.StatusPending), string(payment.StatusProcessing)}, now).
		Order("expires_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels)
}

// Create persists a new payment made by the owner for a listing
func (r *GormPaymentRepository) Create(ctx context.Context, ownerID account.AccountID, listingID listing.ListingID, p payment.Payment) error {
	model, err := models.PaymentModelFromDomain(ownerID.String(), listingID.String(), p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the new state of an existing payment. Ownership and the
// target listing never change through an update.
func (r *GormPaymentRepository) Update(ctx context.Context, p payment.Payment) error {
	model, err := models.PaymentModelFromDomain("", "", p)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("id = ?", model.ID).
		Omit("owner_id", "listing_id", "created_at").
		Select("*").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainPayments(paymentModels []models.PaymentModel) ([]payment.Payment, error) {
	payments := make([]payment.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		p, err := paymentModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}
