package models

import (
	"time"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// AccountModel is the persistence model for the Account domain entity.
// The contact channel is stored as a JSON document.
type AccountModel struct {
	ID          string  `gorm:"type:varchar(64);primary_key"`
	Email       string  `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName string  `gorm:"type:varchar(100)"`
	Contact     *string `gorm:"type:jsonb"`
	Active      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// AccountModelFromDomain creates a persistence model from a domain Account.
func AccountModelFromDomain(acc account.Account) (*AccountModel, error) {
	m := &AccountModel{
		ID:          acc.ID().String(),
		Email:       acc.Email(),
		DisplayName: acc.DisplayName(),
		Active:      acc.IsActive(),
		CreatedAt:   acc.CreatedAt(),
		UpdatedAt:   acc.UpdatedAt(),
	}

	if contact := acc.ContactChannel(); contact != nil {
		raw, err := marshalColumn(contact.ToDTO())
		if err != nil {
			return nil, err
		}
		m.Contact = &raw
	}

	return m, nil
}

// ToDomain rebuilds the domain Account from the persisted row.
func (m *AccountModel) ToDomain() (account.Account, error) {
	var contact *valueobject.ContactChannel
	if m.Contact != nil {
		var dto valueobject.ContactChannelDTO
		if err := unmarshalColumn(*m.Contact, &dto); err != nil {
			return account.Account{}, err
		}
		channel, err := dto.ToContactChannel()
		if err != nil {
			return account.Account{}, err
		}
		contact = &channel
	}

	return account.RestoreAccount(account.AccountID(m.ID), m.Email, m.DisplayName,
		contact, m.Active, m.CreatedAt, m.UpdatedAt)
}
