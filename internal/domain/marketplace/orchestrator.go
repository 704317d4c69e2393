package marketplace

import (
	"fmt"
	"time"

	"github.com/inmolista/backend/internal/domain/account"
	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/payment"
	"github.com/inmolista/backend/internal/domain/property"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// ListingDraft carries the content fields for a new or edited listing
type ListingDraft struct {
	Title       string
	Description string
	Price       valueobject.Price
	Contact     *valueobject.ContactChannel
	Media       valueobject.PhotoGallery
}

// PaymentInitiation pairs the new payment with the listing transitioned to
// payment_pending
type PaymentInitiation struct {
	Payment payment.Payment
	Listing listing.Listing
}

// PaymentSettlement pairs the settled payment with the listing it affected
type PaymentSettlement struct {
	Payment payment.Payment
	Listing listing.Listing
}

// Orchestrator is the only component that reasons about more than one
// entity type at once. Every operation is pure with respect to its inputs:
// the single effect is reading the clock for timestamps. Persistence of the
// returned entities, and the atomicity of multi-entity updates, belong to
// the caller.
type Orchestrator struct {
	cfg        Config
	listingSvc *listing.Service
	paymentSvc *payment.Service
	now        func() time.Time
}

// Option configures the orchestrator
type Option func(*Orchestrator)

// WithClock injects a deterministic clock for tests
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates the orchestrator over the injected configuration
func NewOrchestrator(cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		listingSvc: listing.NewService(cfg.ListingDuration),
		paymentSvc: payment.NewService(cfg.ListingFee, cfg.PaymentWindow),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CheckUserListingEligibility decides whether the account may create a
// listing for the property. Check order: account active, account verified
// (split into "needs phone" and "needs verification"), property available,
// property publication rules. First failing check wins.
func (o *Orchestrator) CheckUserListingEligibility(acc account.Account, prop property.Property) Eligibility {
	if !acc.IsActive() {
		return notEligible(ReasonAccountInactive)
	}
	if !acc.HasContactChannel() {
		return notEligible(ReasonRequiresPhone)
	}
	if !acc.IsVerified() {
		return notEligible(ReasonRequiresVerification)
	}
	if !prop.IsAvailable() {
		return notEligible(ReasonPropertyUnavailable)
	}
	if err := prop.ValidateForPublication(); err != nil {
		if ve, ok := shared.AsValidationError(err); ok {
			return notEligible(ReasonPropertyInvalid, ve.Violations...)
		}
		return notEligible(ReasonPropertyInvalid, err.Error())
	}
	return eligible()
}

// CreateListingForUserAndProperty re-checks eligibility, builds the draft
// listing and runs the cross-entity rules (contact phone consistency,
// price-per-area sanity)
func (o *Orchestrator) CreateListingForUserAndProperty(acc account.Account, prop property.Property, draft ListingDraft) shared.Result[listing.Listing] {
	return guard("listing creation", func() shared.Result[listing.Listing] {
		if elig := o.CheckUserListingEligibility(acc, prop); !elig.IsEligible() {
			return shared.Fail[listing.Listing](elig.Message(), elig.Violations...)
		}

		l, err := o.listingSvc.CreateListingWithValidation(listing.CreateListingInput{
			Title:       draft.Title,
			Description: draft.Description,
			Price:       draft.Price,
			Contact:     draft.Contact,
			Media:       draft.Media,
			Now:         o.now(),
		})
		if err != nil {
			return shared.FailErr[listing.Listing](err)
		}

		if violations := validateListingAgainstProperty(acc, l, prop, o.cfg); len(violations) > 0 {
			return shared.Fail[listing.Listing]("Listing does not satisfy marketplace rules", violations...)
		}
		return shared.Ok(l)
	})
}

// InitiateListingPayment creates the listing-fee payment and moves the
// listing to payment_pending. Requires a verified account and a listing
// that still needs payment.
func (o *Orchestrator) InitiateListingPayment(acc account.Account, l listing.Listing,
	paymentID payment.PaymentID, provider payment.Provider, method payment.Method) shared.Result[PaymentInitiation] {

	return guard("payment initiation", func() shared.Result[PaymentInitiation] {
		if !acc.IsVerified() {
			return shared.Fail[PaymentInitiation]("Account must be verified to make payments")
		}
		if !l.NeedsPayment() {
			return shared.Fail[PaymentInitiation](
				fmt.Sprintf("Listing in status %s does not need payment", l.Status()))
		}

		now := o.now()
		p, err := o.paymentSvc.CreateListingFeePayment(paymentID, provider, method,
			fmt.Sprintf("Publicación de anuncio: %s", l.Title()), now)
		if err != nil {
			return shared.FailErr[PaymentInitiation](err)
		}

		updated := l
		if l.Status() != listing.StatusPaymentPending {
			updated, err = l.MarkAwaitingPayment(now)
			if err != nil {
				return shared.FailErr[PaymentInitiation](err)
			}
		}
		return shared.Ok(PaymentInitiation{Payment: p, Listing: updated})
	})
}

// ProcessPaymentCompletionForListing completes the payment and activates
// the listing as one domain-level step. Deliberately not idempotent: once
// the listing is active a second completion fails. Durable atomicity is the
// persistence layer's responsibility.
func (o *Orchestrator) ProcessPaymentCompletionForListing(p payment.Payment, l listing.Listing,
	receiptData, providerResponse string) shared.Result[PaymentSettlement] {

	return guard("payment completion", func() shared.Result[PaymentSettlement] {
		now := o.now()

		if p.Status() != payment.StatusProcessing {
			return shared.Fail[PaymentSettlement](
				fmt.Sprintf("Payment in status %s cannot be completed", p.Status()))
		}
		if l.Status() != listing.StatusPaymentPending {
			return shared.Fail[PaymentSettlement](
				fmt.Sprintf("Listing in status %s is not awaiting payment", l.Status()))
		}
		if !o.paymentSvc.IsListingFeeAmount(p) {
			return shared.Fail[PaymentSettlement]("Payment amount does not match the listing fee",
				fmt.Sprintf("expected %s, got %s", o.cfg.ListingFee.Format(), p.Amount().Format()))
		}
		if p.IsExpired(now) {
			return shared.Fail[PaymentSettlement]("Payment window has expired")
		}

		completed, err := p.Complete(now, receiptData, providerResponse)
		if err != nil {
			return shared.FailErr[PaymentSettlement](err)
		}
		activated, err := o.listingSvc.ConfirmPaymentAndActivate(l, now)
		if err != nil {
			return shared.FailErr[PaymentSettlement](err)
		}
		return shared.Ok(PaymentSettlement{Payment: completed, Listing: activated})
	})
}

// ProcessPaymentFailureForListing fails the payment and reverts the listing
// to draft so the owner can retry without re-entering content
func (o *Orchestrator) ProcessPaymentFailureForListing(p payment.Payment, l listing.Listing,
	errorMessage, providerResponse string) shared.Result[PaymentSettlement] {

	return guard("payment failure", func() shared.Result[PaymentSettlement] {
		now := o.now()

		failed, err := p.Fail(errorMessage, now, providerResponse)
		if err != nil {
			return shared.FailErr[PaymentSettlement](err)
		}
		reverted, err := l.RevertToDraft(now)
		if err != nil {
			return shared.FailErr[PaymentSettlement](err)
		}
		return shared.Ok(PaymentSettlement{Payment: failed, Listing: reverted})
	})
}

// GetUserCapabilities projects the account's permitted platform actions.
// This is the single source of truth every UI surface consults.
func (o *Orchestrator) GetUserCapabilities(acc account.Account) Capabilities {
	return capabilitiesFor(acc, o.now(), o.cfg.NewUserWindow)
}

// CanUserEditListing decides whether the account may edit the listing.
// Ownership is supplied by the caller: resolving it requires the
// persistence layer.
func (o *Orchestrator) CanUserEditListing(acc account.Account, l listing.Listing, ownsListing bool) bool {
	return ownsListing && acc.IsActive() && acc.IsVerified() && l.IsEditable()
}

// UpdateUserListingContent applies a content edit after authorization
func (o *Orchestrator) UpdateUserListingContent(acc account.Account, l listing.Listing,
	ownsListing bool, draft ListingDraft) shared.Result[listing.Listing] {

	return guard("listing edit", func() shared.Result[listing.Listing] {
		if !o.CanUserEditListing(acc, l, ownsListing) {
			return shared.Fail[listing.Listing]("Account is not allowed to edit this listing")
		}
		updated, err := o.listingSvc.UpdateContent(l, draft.Title, draft.Description,
			draft.Price, draft.Contact, draft.Media, o.now())
		if err != nil {
			return shared.FailErr[listing.Listing](err)
		}
		return shared.Ok(updated)
	})
}

// guard converts panics from programmer errors into generic "unknown"
// failures so no orchestrator operation ever throws
func guard[T any](op string, fn func() shared.Result[T]) (res shared.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = shared.Fail[T](fmt.Sprintf("Unexpected error during %s: %v", op, r))
		}
	}()
	return fn()
}
