package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// AccountID identifies a platform account
type AccountID string

// NewAccountID generates a new account ID
func NewAccountID() AccountID {
	return AccountID(uuid.NewString())
}

// ParseAccountID validates a raw ID string
func ParseAccountID(raw string) (AccountID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", shared.NewDomainError("INVALID_ACCOUNT_ID", "Account ID cannot be empty")
	}
	return AccountID(raw), nil
}

// String returns the raw ID value
func (id AccountID) String() string {
	return string(id)
}

// IsZero returns true for the empty ID
func (id AccountID) IsZero() bool {
	return id == ""
}

const (
	maxEmailLength       = 200
	maxDisplayNameLength = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Account represents a platform user. It is immutable: every transition
// returns a new instance. An account is "verified" when it is active and
// carries a contact channel.
type Account struct {
	id          AccountID
	email       string
	displayName string
	contact     *valueobject.ContactChannel
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewAccount creates a validated account, collecting every violated rule
// before failing. New accounts start active.
func NewAccount(id AccountID, email, displayName string, contact *valueobject.ContactChannel, now time.Time) (Account, error) {
	var rules shared.RuleCollector

	if id.IsZero() {
		rules.Add("account ID cannot be empty")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		rules.Add("email cannot be empty")
	} else {
		if len(email) > maxEmailLength {
			rules.Addf("email cannot exceed %d characters", maxEmailLength)
		}
		if !emailRegex.MatchString(email) {
			rules.Addf("email %q is not a valid address", email)
		}
	}

	displayName = strings.TrimSpace(displayName)
	if len(displayName) > maxDisplayNameLength {
		rules.Addf("display name cannot exceed %d characters", maxDisplayNameLength)
	}

	if err := rules.Err("Account", "Invalid account"); err != nil {
		return Account{}, err
	}

	return Account{
		id:          id,
		email:       email,
		displayName: displayName,
		contact:     copyContact(contact),
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state. Used by the
// persistence adapter only.
func RestoreAccount(id AccountID, email, displayName string, contact *valueobject.ContactChannel, active bool, createdAt, updatedAt time.Time) (Account, error) {
	acc, err := NewAccount(id, email, displayName, contact, createdAt)
	if err != nil {
		return Account{}, err
	}
	acc.active = active
	acc.updatedAt = updatedAt
	return acc, nil
}

func copyContact(c *valueobject.ContactChannel) *valueobject.ContactChannel {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// ID returns the account ID
func (a Account) ID() AccountID {
	return a.id
}

// Email returns the normalized email address
func (a Account) Email() string {
	return a.email
}

// DisplayName returns the optional display name
func (a Account) DisplayName() string {
	return a.displayName
}

// ContactChannel returns the optional contact channel
func (a Account) ContactChannel() *valueobject.ContactChannel {
	return copyContact(a.contact)
}

// IsActive returns true if the account is active
func (a Account) IsActive() bool {
	return a.active
}

// CreatedAt returns the creation timestamp
func (a Account) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the last update timestamp
func (a Account) UpdatedAt() time.Time {
	return a.updatedAt
}

// IsVerified returns true when the account is active and has a contact
// channel. Verification gates listing creation and payments.
func (a Account) IsVerified() bool {
	return a.active && a.contact != nil
}

// HasContactChannel returns true if a contact channel is set
func (a Account) HasContactChannel() bool {
	return a.contact != nil
}

// HasCompleteProfile returns true when both display name and contact
// channel are set
func (a Account) HasCompleteProfile() bool {
	return a.displayName != "" && a.contact != nil
}

// AgeAt returns how long the account has existed at the given instant
func (a Account) AgeAt(now time.Time) time.Duration {
	return now.Sub(a.createdAt)
}

// DisplayNameOrEmail returns the display name, falling back to the email
func (a Account) DisplayNameOrEmail() string {
	if a.displayName != "" {
		return a.displayName
	}
	return a.email
}

// WithDisplayName returns a new account with the updated display name
func (a Account) WithDisplayName(displayName string, now time.Time) (Account, error) {
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > maxDisplayNameLength {
		return Account{}, shared.NewValidationError("Account", "Invalid account",
			[]string{"display name cannot exceed 100 characters"})
	}
	updated := a
	updated.displayName = displayName
	updated.updatedAt = now
	return updated, nil
}

// WithContactChannel returns a new account with the contact channel set
func (a Account) WithContactChannel(contact valueobject.ContactChannel, now time.Time) Account {
	updated := a
	updated.contact = &contact
	updated.updatedAt = now
	return updated
}

// WithoutContactChannel returns a new account with the contact channel removed
func (a Account) WithoutContactChannel(now time.Time) Account {
	updated := a
	updated.contact = nil
	updated.updatedAt = now
	return updated
}

// Deactivate returns a new, deactivated account
func (a Account) Deactivate(now time.Time) (Account, error) {
	if !a.active {
		return Account{}, shared.NewDomainError("ALREADY_INACTIVE", "Account is already deactivated")
	}
	updated := a
	updated.active = false
	updated.updatedAt = now
	return updated, nil
}

// Reactivate returns a new, active account
func (a Account) Reactivate(now time.Time) (Account, error) {
	if a.active {
		return Account{}, shared.NewDomainError("ALREADY_ACTIVE", "Account is already active")
	}
	updated := a
	updated.active = true
	updated.updatedAt = now
	return updated, nil
}

// Equals returns true if both accounts hold the same state
func (a Account) Equals(other Account) bool {
	if a.id != other.id || a.email != other.email || a.displayName != other.displayName ||
		a.active != other.active || !a.createdAt.Equal(other.createdAt) || !a.updatedAt.Equal(other.updatedAt) {
		return false
	}
	if a.contact == nil || other.contact == nil {
		return a.contact == other.contact
	}
	return a.contact.Equals(*other.contact)
}
