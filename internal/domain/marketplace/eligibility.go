package marketplace

// EligibilityReason identifies why an account may not create a listing
type EligibilityReason string

const (
	ReasonEligible             EligibilityReason = "eligible"
	ReasonAccountInactive      EligibilityReason = "account_inactive"
	ReasonRequiresPhone        EligibilityReason = "requires_phone"
	ReasonRequiresVerification EligibilityReason = "requires_verification"
	ReasonPropertyUnavailable  EligibilityReason = "property_unavailable"
	ReasonPropertyInvalid      EligibilityReason = "property_invalid"
)

// Label returns the user-facing message for the reason
func (r EligibilityReason) Label() string {
	switch r {
	case ReasonEligible:
		return "Puedes publicar tu anuncio"
	case ReasonAccountInactive:
		return "Tu cuenta está desactivada"
	case ReasonRequiresPhone:
		return "Agrega un teléfono de contacto para publicar"
	case ReasonRequiresVerification:
		return "Verifica tu cuenta para publicar"
	case ReasonPropertyUnavailable:
		return "La propiedad no está disponible"
	case ReasonPropertyInvalid:
		return "La propiedad no está lista para publicarse"
	}
	return string(r)
}

// Eligibility is the yes/no-plus-reason decision for listing creation.
// Checks run in a fixed order and the first failure wins; there is no
// partial eligibility.
type Eligibility struct {
	Reason     EligibilityReason
	Violations []string
}

// IsEligible returns true when the account may create the listing
func (e Eligibility) IsEligible() bool {
	return e.Reason == ReasonEligible
}

// Message returns the user-facing message for the decision
func (e Eligibility) Message() string {
	return e.Reason.Label()
}

func eligible() Eligibility {
	return Eligibility{Reason: ReasonEligible}
}

func notEligible(reason EligibilityReason, violations ...string) Eligibility {
	return Eligibility{Reason: reason, Violations: violations}
}
