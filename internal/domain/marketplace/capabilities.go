package marketplace

import (
	"time"

	"github.com/inmolista/backend/internal/domain/account"
)

// Capabilities is the per-account projection of permitted platform actions.
// Every UI surface consults this single projection instead of re-deriving
// flags from account state.
type Capabilities struct {
	CanSearch              bool `json:"canSearch"`
	CanContact             bool `json:"canContact"`
	CanCreateListings      bool `json:"canCreateListings"`
	CanMakePayments        bool `json:"canMakePayments"`
	CanEditProfile         bool `json:"canEditProfile"`
	NeedsPhoneVerification bool `json:"needsPhoneVerification"`
	HasCompleteProfile     bool `json:"hasCompleteProfile"`
	IsNewUser              bool `json:"isNewUser"`
}

// capabilitiesFor projects the account's state at the given instant
func capabilitiesFor(acc account.Account, now time.Time, newUserWindow time.Duration) Capabilities {
	verified := acc.IsVerified()
	return Capabilities{
		CanSearch:         acc.IsActive(),
		CanContact:        verified,
		CanCreateListings: verified,
		CanMakePayments:   verified,
		CanEditProfile:    acc.IsActive(),
		// Only meaningful once a phone exists: an account without a
		// contact channel has nothing to verify yet.
		NeedsPhoneVerification: acc.HasContactChannel() && !verified,
		HasCompleteProfile:     acc.HasCompleteProfile(),
		IsNewUser:              acc.AgeAt(now) < newUserWindow,
	}
}
