package account

import (
	"context"

	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// IdentityErrorKind classifies identity provider failures. Callers may
// branch on it for messaging, but correctness never depends on the kind.
type IdentityErrorKind string

const (
	IdentityErrorNetwork            IdentityErrorKind = "network"
	IdentityErrorAuthentication     IdentityErrorKind = "authentication"
	IdentityErrorValidation         IdentityErrorKind = "validation"
	IdentityErrorBusiness           IdentityErrorKind = "business"
	IdentityErrorServiceUnavailable IdentityErrorKind = "service_unavailable"
	IdentityErrorUnknown            IdentityErrorKind = "unknown"
)

// IdentityError is a typed failure returned by the identity provider port
type IdentityError struct {
	Kind    IdentityErrorKind
	Message string
}

// Error implements the error interface
func (e *IdentityError) Error() string {
	return e.Message
}

// NewIdentityError creates a typed identity failure
func NewIdentityError(kind IdentityErrorKind, message string) *IdentityError {
	return &IdentityError{Kind: kind, Message: message}
}

// RegisterInput carries the fields for registering a new identity
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Credentials carries sign-in fields
type Credentials struct {
	Email    string
	Password string
}

// ProfileUpdate carries profile fields to push to the provider
type ProfileUpdate struct {
	DisplayName string
	Contact     *valueobject.ContactChannel
}

// IdentityProvider is the port to the external identity/authentication
// service. Implemented by infrastructure; the core only consumes it.
// Transient-vs-permanent classification and retries belong to the adapter.
type IdentityProvider interface {
	// Register creates a new identity and returns the resulting account
	Register(ctx context.Context, input RegisterInput) (Account, error)

	// SignIn authenticates and returns the signed-in account
	SignIn(ctx context.Context, creds Credentials) (Account, error)

	// SignOut terminates the current session
	SignOut(ctx context.Context) error

	// CurrentAccount returns the currently signed-in account, if any
	CurrentAccount(ctx context.Context) (Account, error)

	// IsEmailRegistered reports whether the email already has an identity
	IsEmailRegistered(ctx context.Context, email string) (bool, error)

	// IsPhoneRegistered reports whether the phone already has an identity
	IsPhoneRegistered(ctx context.Context, phone valueobject.PhoneNumber) (bool, error)

	// SendPhoneCode sends a verification code to the phone
	SendPhoneCode(ctx context.Context, phone valueobject.PhoneNumber) error

	// VerifyPhoneCode checks a verification code previously sent
	VerifyPhoneCode(ctx context.Context, phone valueobject.PhoneNumber, code string) (bool, error)

	// UpdateProfile pushes profile changes to the provider
	UpdateProfile(ctx context.Context, id AccountID, update ProfileUpdate) (Account, error)

	// DeleteAccount removes the identity
	DeleteAccount(ctx context.Context, id AccountID) error

	// RequestPasswordReset triggers the password reset flow
	RequestPasswordReset(ctx context.Context, email string) error
}
