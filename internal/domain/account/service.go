package account

import (
	"time"

	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// CreateAccountInput carries the fields needed to create an account
type CreateAccountInput struct {
	ID          AccountID
	Email       string
	DisplayName string
	Contact     *valueobject.ContactChannel
	Now         time.Time
}

// Service exposes account factory and transition helpers. It is stateless.
type Service struct{}

// NewService creates an account service
func NewService() *Service {
	return &Service{}
}

// CreateAccountWithValidation builds and validates a new account. On failure
// it returns a *shared.ValidationError listing every violated rule.
func (s *Service) CreateAccountWithValidation(input CreateAccountInput) (Account, error) {
	id := input.ID
	if id.IsZero() {
		id = NewAccountID()
	}
	return NewAccount(id, input.Email, input.DisplayName, input.Contact, input.Now)
}

// AttachContactChannel builds a contact channel from its parts and attaches
// it to the account, returning the updated account
func (s *Service) AttachContactChannel(acc Account, rawPhone string, slot valueobject.TimeSlot, note string, now time.Time) (Account, error) {
	phone, err := valueobject.NewPhoneNumber(rawPhone)
	if err != nil {
		return Account{}, err
	}
	contact, err := valueobject.NewContactChannel(phone, slot, note)
	if err != nil {
		return Account{}, err
	}
	return acc.WithContactChannel(contact, now), nil
}

// UpdateDisplayName renames the account
func (s *Service) UpdateDisplayName(acc Account, displayName string, now time.Time) (Account, error) {
	return acc.WithDisplayName(displayName, now)
}
