package account

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// ProfileService drives registration and profile flows against the identity
// provider and keeps the local account store in sync with it.
type ProfileService struct {
	identity account.IdentityProvider
	accounts account.Repository
	domain   *account.Service
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a ProfileService
type Option func(*ProfileService)

// WithClock overrides the service clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *ProfileService) {
		s.now = now
	}
}

// NewProfileService creates a ProfileService
func NewProfileService(identity account.IdentityProvider, accounts account.Repository, logger *zap.Logger, opts ...Option) *ProfileService {
	s := &ProfileService{
		identity: identity,
		accounts: accounts,
		domain:   account.NewService(),
		logger:   logger.Named("account"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity and persists the resulting account locally.
// A duplicate email is rejected before the provider is asked to register.
func (s *ProfileService) Register(ctx context.Context, input account.RegisterInput) (account.Account, error) {
	taken, err := s.identity.IsEmailRegistered(ctx, input.Email)
	if err != nil {
		return account.Account{}, s.mapIdentityError(err)
	}
	if taken {
		return account.Account{}, shared.NewDomainError("EMAIL_TAKEN", "El correo ya está registrado")
	}

	acc, err := s.identity.Register(ctx, input)
	if err != nil {
		return account.Account{}, s.mapIdentityError(err)
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		return account.Account{}, err
	}

	s.logger.Info("account registered",
		zap.String("account_id", acc.ID().String()),
		zap.String("email", acc.Email()))
	return acc, nil
}

// SignIn authenticates against the provider and refreshes the local copy
func (s *ProfileService) SignIn(ctx context.Context, creds account.Credentials) (account.Account, error) {
	acc, err := s.identity.SignIn(ctx, creds)
	if err != nil {
		return account.Account{}, s.mapIdentityError(err)
	}

	if err := s.accounts.Update(ctx, acc); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return account.Account{}, err
		}
		// First sign-in on this node; materialize the local copy
		if err := s.accounts.Create(ctx, acc); err != nil {
			return account.Account{}, err
		}
	}

	s.logger.Info("account signed in", zap.String("account_id", acc.ID().String()))
	return acc, nil
}

// SignOut terminates the current provider session
func (s *ProfileService) SignOut(ctx context.Context) error {
	if err := s.identity.SignOut(ctx); err != nil {
		return s.mapIdentityError(err)
	}
	return nil
}

// UpdateDisplayName renames the account locally and at the provider
func (s *ProfileService) UpdateDisplayName(ctx context.Context, id account.AccountID, displayName string) (account.Account, error) {
	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return account.Account{}, err
	}

	updated, err := s.domain.UpdateDisplayName(acc, displayName, s.now())
	if err != nil {
		return account.Account{}, err
	}

	if _, err := s.identity.UpdateProfile(ctx, id, account.ProfileUpdate{
		DisplayName: updated.DisplayName(),
		Contact:     updated.ContactChannel(),
	}); err != nil {
		return account.Account{}, s.mapIdentityError(err)
	}

	if err := s.accounts.Update(ctx, updated); err != nil {
		return account.Account{}, err
	}
	return updated, nil
}

// StartPhoneVerification sends a verification code to the phone after
// checking it is not already bound to another identity
func (s *ProfileService) StartPhoneVerification(ctx context.Context, rawPhone string) error {
	phone, err := valueobject.NewPhoneNumber(rawPhone)
	if err != nil {
		return err
	}

	taken, err := s.identity.IsPhoneRegistered(ctx, phone)
	if err != nil {
		return s.mapIdentityError(err)
	}
	if taken {
		return shared.NewDomainError("PHONE_TAKEN", "El teléfono ya está registrado")
	}

	if err := s.identity.SendPhoneCode(ctx, phone); err != nil {
		return s.mapIdentityError(err)
	}
	return nil
}

// ConfirmPhoneVerification verifies the code and attaches the phone as the
// account's contact channel, which makes the account verified
func (s *ProfileService) ConfirmPhoneVerification(ctx context.Context, id account.AccountID, rawPhone, code string, slot valueobject.TimeSlot, note string) (account.Account, error) {
	phone, err := valueobject.NewPhoneNumber(rawPhone)
	if err != nil {
		return account.Account{}, err
	}

	ok, err := s.identity.VerifyPhoneCode(ctx, phone, code)
	if err != nil {
		return account.Account{}, s.mapIdentityError(err)
	}
	if !ok {
		return account.Account{}, shared.NewDomainError("INVALID_CODE", "El código de verificación no es válido")
	}

	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return account.Account{}, err
	}

	updated, err := s.domain.AttachContactChannel(acc, phone.E164(), slot, note, s.now())
	if err != nil {
		return account.Account{}, err
	}

	if _, err := s.identity.UpdateProfile(ctx, id, account.ProfileUpdate{
		DisplayName: updated.DisplayName(),
		Contact:     updated.ContactChannel(),
	}); err != nil {
		return account.Account{}, s.mapIdentityError(err)
	}

	if err := s.accounts.Update(ctx, updated); err != nil {
		return account.Account{}, err
	}

	s.logger.Info("phone verified",
		zap.String("account_id", id.String()),
		zap.String("phone", phone.E164()))
	return updated, nil
}

// DeleteAccount removes the identity and the local copy
func (s *ProfileService) DeleteAccount(ctx context.Context, id account.AccountID) error {
	if err := s.identity.DeleteAccount(ctx, id); err != nil {
		return s.mapIdentityError(err)
	}
	if err := s.accounts.Delete(ctx, id); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	s.logger.Info("account deleted", zap.String("account_id", id.String()))
	return nil
}

// RequestPasswordReset triggers the provider's reset flow
func (s *ProfileService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.identity.RequestPasswordReset(ctx, email); err != nil {
		return s.mapIdentityError(err)
	}
	return nil
}

// mapIdentityError translates provider failures into domain errors. Unknown
// error values pass through untouched.
func (s *ProfileService) mapIdentityError(err error) error {
	var idErr *account.IdentityError
	if !errors.As(err, &idErr) {
		return err
	}

	s.logger.Warn("identity provider error",
		zap.String("kind", string(idErr.Kind)),
		zap.String("message", idErr.Message))

	switch idErr.Kind {
	case account.IdentityErrorAuthentication:
		return shared.NewDomainError("AUTHENTICATION_FAILED", idErr.Message)
	case account.IdentityErrorValidation:
		return shared.NewValidationError("Account", "Invalid account", []string{idErr.Message})
	case account.IdentityErrorBusiness:
		return shared.NewDomainError("IDENTITY_REJECTED", idErr.Message)
	case account.IdentityErrorNetwork, account.IdentityErrorServiceUnavailable:
		return shared.NewDomainError("IDENTITY_UNAVAILABLE", "El servicio de identidad no está disponible")
	default:
		return shared.NewDomainError("IDENTITY_ERROR", idErr.Message)
	}
}
