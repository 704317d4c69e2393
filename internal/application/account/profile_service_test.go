package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

// fakeIdentity is an in-memory IdentityProvider double
type fakeIdentity struct {
	registered      map[string]account.Account
	phones          map[string]bool
	sentCodes       map[string]string
	failWith        error
	registerCalls   int
	lastUpdate      account.ProfileUpdate
	deletedAccounts []account.AccountID
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		registered: make(map[string]account.Account),
		phones:     make(map[string]bool),
		sentCodes:  make(map[string]string),
	}
}

func (f *fakeIdentity) Register(ctx context.Context, input account.RegisterInput) (account.Account, error) {
	if f.failWith != nil {
		return account.Account{}, f.failWith
	}
	f.registerCalls++
	acc, err := account.NewAccount(account.NewAccountID(), input.Email, input.DisplayName, nil, testNow)
	if err != nil {
		return account.Account{}, err
	}
	f.registered[acc.Email()] = acc
	return acc, nil
}

func (f *fakeIdentity) SignIn(ctx context.Context, creds account.Credentials) (account.Account, error) {
	if f.failWith != nil {
		return account.Account{}, f.failWith
	}
	acc, ok := f.registered[creds.Email]
	if !ok {
		return account.Account{}, account.NewIdentityError(account.IdentityErrorAuthentication, "credenciales inválidas")
	}
	return acc, nil
}

func (f *fakeIdentity) SignOut(ctx context.Context) error {
	return f.failWith
}

func (f *fakeIdentity) CurrentAccount(ctx context.Context) (account.Account, error) {
	return account.Account{}, account.NewIdentityError(account.IdentityErrorAuthentication, "no session")
}

func (f *fakeIdentity) IsEmailRegistered(ctx context.Context, email string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.registered[email]
	return ok, nil
}

func (f *fakeIdentity) IsPhoneRegistered(ctx context.Context, phone valueobject.PhoneNumber) (bool, error) {
	return f.phones[phone.E164()], nil
}

func (f *fakeIdentity) SendPhoneCode(ctx context.Context, phone valueobject.PhoneNumber) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sentCodes[phone.E164()] = "123456"
	return nil
}

func (f *fakeIdentity) VerifyPhoneCode(ctx context.Context, phone valueobject.PhoneNumber, code string) (bool, error) {
	return f.sentCodes[phone.E164()] == code, nil
}

func (f *fakeIdentity) UpdateProfile(ctx context.Context, id account.AccountID, update account.ProfileUpdate) (account.Account, error) {
	if f.failWith != nil {
		return account.Account{}, f.failWith
	}
	f.lastUpdate = update
	return account.Account{}, nil
}

func (f *fakeIdentity) DeleteAccount(ctx context.Context, id account.AccountID) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deletedAccounts = append(f.deletedAccounts, id)
	return nil
}

func (f *fakeIdentity) RequestPasswordReset(ctx context.Context, email string) error {
	return f.failWith
}

// fakeAccounts is an in-memory account.Repository double
type fakeAccounts struct {
	byID map[account.AccountID]account.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: make(map[account.AccountID]account.Account)}
}

func (f *fakeAccounts) FindByID(ctx context.Context, id account.AccountID) (account.Account, error) {
	acc, ok := f.byID[id]
	if !ok {
		return account.Account{}, shared.ErrNotFound
	}
	return acc, nil
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	for _, acc := range f.byID {
		if acc.Email() == email {
			return acc, nil
		}
	}
	return account.Account{}, shared.ErrNotFound
}

func (f *fakeAccounts) Create(ctx context.Context, acc account.Account) error {
	f.byID[acc.ID()] = acc
	return nil
}

func (f *fakeAccounts) Update(ctx context.Context, acc account.Account) error {
	if _, ok := f.byID[acc.ID()]; !ok {
		return shared.ErrNotFound
	}
	f.byID[acc.ID()] = acc
	return nil
}

func (f *fakeAccounts) Delete(ctx context.Context, id account.AccountID) error {
	if _, ok := f.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestService() (*ProfileService, *fakeIdentity, *fakeAccounts) {
	identity := newFakeIdentity()
	accounts := newFakeAccounts()
	svc := NewProfileService(identity, accounts, zap.NewNop(),
		WithClock(func() time.Time { return testNow }))
	return svc, identity, accounts
}

func TestProfileService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and persists the account locally", func(t *testing.T) {
		svc, identity, accounts := newTestService()

		acc, err := svc.Register(ctx, account.RegisterInput{
			Email:       "maria@example.com",
			Password:    "secret123",
			DisplayName: "María",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, identity.registerCalls)
		stored, err := accounts.FindByID(ctx, acc.ID())
		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", stored.Email())
	})

	t.Run("rejects an already registered email without calling register", func(t *testing.T) {
		svc, identity, _ := newTestService()

		_, err := svc.Register(ctx, account.RegisterInput{Email: "maria@example.com", Password: "x"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, account.RegisterInput{Email: "maria@example.com", Password: "x"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		assert.Equal(t, 1, identity.registerCalls)
	})

	t.Run("maps provider outages to a stable code", func(t *testing.T) {
		svc, identity, _ := newTestService()
		identity.failWith = account.NewIdentityError(account.IdentityErrorServiceUnavailable, "timeout")

		_, err := svc.Register(ctx, account.RegisterInput{Email: "x@example.com", Password: "x"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "IDENTITY_UNAVAILABLE", domainErr.Code)
	})
}

func TestProfileService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("materializes the local copy on first sign-in", func(t *testing.T) {
		svc, identity, accounts := newTestService()
		acc, err := identity.Register(ctx, account.RegisterInput{Email: "maria@example.com"})
		require.NoError(t, err)

		signed, err := svc.SignIn(ctx, account.Credentials{Email: "maria@example.com", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, acc.ID(), signed.ID())

		_, err = accounts.FindByID(ctx, acc.ID())
		assert.NoError(t, err)
	})

	t.Run("authentication failures carry the mapped code", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.SignIn(ctx, account.Credentials{Email: "nobody@example.com", Password: "x"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "AUTHENTICATION_FAILED", domainErr.Code)
	})
}

func TestProfileService_PhoneVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("verified phone becomes the contact channel", func(t *testing.T) {
		svc, _, accounts := newTestService()

		acc, err := svc.Register(ctx, account.RegisterInput{Email: "maria@example.com", Password: "x"})
		require.NoError(t, err)
		assert.False(t, acc.IsVerified())

		require.NoError(t, svc.StartPhoneVerification(ctx, "987654321"))

		verified, err := svc.ConfirmPhoneVerification(ctx, acc.ID(), "987654321", "123456",
			valueobject.TimeSlotEvening, "")
		require.NoError(t, err)
		assert.True(t, verified.IsVerified())

		stored, err := accounts.FindByID(ctx, acc.ID())
		require.NoError(t, err)
		require.NotNil(t, stored.ContactChannel())
		assert.Equal(t, "+51987654321", stored.ContactChannel().Phone().E164())
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		acc, err := svc.Register(ctx, account.RegisterInput{Email: "maria@example.com", Password: "x"})
		require.NoError(t, err)
		require.NoError(t, svc.StartPhoneVerification(ctx, "987654321"))

		_, err = svc.ConfirmPhoneVerification(ctx, acc.ID(), "987654321", "000000",
			valueobject.TimeSlotAnytime, "")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CODE", domainErr.Code)
	})

	t.Run("phone already bound to another identity is rejected", func(t *testing.T) {
		svc, identity, _ := newTestService()
		identity.phones["+51987654321"] = true

		err := svc.StartPhoneVerification(ctx, "987654321")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PHONE_TAKEN", domainErr.Code)
	})
}

func TestProfileService_UpdateDisplayName(t *testing.T) {
	ctx := context.Background()
	svc, identity, accounts := newTestService()

	acc, err := svc.Register(ctx, account.RegisterInput{Email: "maria@example.com", Password: "x"})
	require.NoError(t, err)

	updated, err := svc.UpdateDisplayName(ctx, acc.ID(), "María Torres")
	require.NoError(t, err)
	assert.Equal(t, "María Torres", updated.DisplayName())
	assert.Equal(t, "María Torres", identity.lastUpdate.DisplayName)

	stored, err := accounts.FindByID(ctx, acc.ID())
	require.NoError(t, err)
	assert.Equal(t, "María Torres", stored.DisplayName())
}

func TestProfileService_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc, identity, accounts := newTestService()

	acc, err := svc.Register(ctx, account.RegisterInput{Email: "maria@example.com", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, acc.ID()))
	assert.Contains(t, identity.deletedAccounts, acc.ID())

	_, err = accounts.FindByID(ctx, acc.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
