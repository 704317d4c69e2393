package models

import (
	"time"

	"github.com/inmolista/backend/internal/domain/payment"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// PaymentModel is the persistence model for the Payment domain entity.
// The amount is stored as a JSON document; provider payloads are kept as
// opaque text.
type PaymentModel struct {
	ID               string `gorm:"type:varchar(64);primary_key"`
	OwnerID          string `gorm:"type:varchar(64);not null;index"`
	ListingID        string `gorm:"type:varchar(64);not null;index"`
	Amount           string `gorm:"type:jsonb;not null"`
	Status           string `gorm:"type:varchar(20);not null;index"`
	Provider         string `gorm:"type:varchar(20);not null"`
	Method           string `gorm:"type:varchar(20);not null"`
	ProviderTxID     string `gorm:"type:varchar(100)"`
	ReferenceCode    string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description      string `gorm:"type:varchar(200);not null"`
	CompletedAt      *time.Time
	ExpiresAt        *time.Time `gorm:"index"`
	ProviderResponse string     `gorm:"type:text"`
	ErrorMessage     string     `gorm:"type:text"`
	ReceiptData      string     `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentModelFromDomain creates a persistence model from a domain Payment.
func PaymentModelFromDomain(ownerID, listingID string, p payment.Payment) (*PaymentModel, error) {
	amount, err := marshalColumn(p.Amount().ToDTO())
	if err != nil {
		return nil, err
	}

	return &PaymentModel{
		ID:               p.ID().String(),
		OwnerID:          ownerID,
		ListingID:        listingID,
		Amount:           amount,
		Status:           string(p.Status()),
		Provider:         string(p.Provider()),
		Method:           string(p.Method()),
		ProviderTxID:     p.ProviderTransactionID(),
		ReferenceCode:    p.ReferenceCode(),
		Description:      p.Description(),
		CompletedAt:      p.CompletedAt(),
		ExpiresAt:        p.ExpiresAt(),
		ProviderResponse: p.ProviderResponse(),
		ErrorMessage:     p.ErrorMessage(),
		ReceiptData:      p.ReceiptData(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}, nil
}

// ToDomain rebuilds the domain Payment from the persisted row.
func (m *PaymentModel) ToDomain() (payment.Payment, error) {
	var amountDTO valueobject.PriceDTO
	if err := unmarshalColumn(m.Amount, &amountDTO); err != nil {
		return payment.Payment{}, err
	}
	amount, err := amountDTO.ToPrice()
	if err != nil {
		return payment.Payment{}, err
	}

	return payment.RestorePayment(payment.PaymentID(m.ID), amount,
		payment.Status(m.Status), payment.Provider(m.Provider), payment.Method(m.Method),
		m.ProviderTxID, m.ReferenceCode, m.Description,
		m.CreatedAt, m.UpdatedAt, m.CompletedAt, m.ExpiresAt,
		m.ProviderResponse, m.ErrorMessage, m.ReceiptData)
}
