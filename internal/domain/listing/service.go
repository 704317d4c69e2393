package listing

import (
	"time"

	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// CreateListingInput carries the fields needed to create a draft listing
type CreateListingInput struct {
	ID          ListingID
	Title       string
	Description string
	Price       valueobject.Price
	Contact     *valueobject.ContactChannel
	Media       valueobject.PhotoGallery
	Now         time.Time
}

// Service exposes listing factory and lifecycle helpers. It is stateless;
// the publication duration comes from injected configuration.
type Service struct {
	publicationDuration time.Duration
}

// NewService creates a listing service with the configured publication
// duration (30 days in production)
func NewService(publicationDuration time.Duration) *Service {
	return &Service{publicationDuration: publicationDuration}
}

// PublicationDuration returns the configured publication window
func (s *Service) PublicationDuration() time.Duration {
	return s.publicationDuration
}

// CreateListingWithValidation builds and validates a new draft listing. On
// failure it returns a *shared.ValidationError listing every violated rule.
func (s *Service) CreateListingWithValidation(input CreateListingInput) (Listing, error) {
	id := input.ID
	if id.IsZero() {
		id = NewListingID()
	}
	return NewListing(id, input.Title, input.Description, input.Price, input.Contact, input.Media, input.Now)
}

// ConfirmPaymentAndActivate publishes a listing whose payment completed.
// Fails unless the listing is awaiting payment.
func (s *Service) ConfirmPaymentAndActivate(l Listing, now time.Time) (Listing, error) {
	if l.Status() != StatusPaymentPending {
		return Listing{}, shared.NewDomainError("INVALID_STATE",
			"Cannot confirm payment for listing in status "+string(l.Status()))
	}
	return l.Activate(now, s.publicationDuration)
}

// ProcessExpiry expires the listing when it is active and past its
// expiration. Returns the listing unchanged, with changed=false, otherwise.
func (s *Service) ProcessExpiry(l Listing, now time.Time) (Listing, bool) {
	if l.Status() != StatusActive || !l.IsPastExpiration(now) {
		return l, false
	}
	expired, err := l.Expire(now)
	if err != nil {
		return l, false
	}
	return expired, true
}

// UpdateContent applies a content edit. Fails unless the listing is in an
// editable status.
func (s *Service) UpdateContent(l Listing, title, description string, price valueobject.Price,
	contact *valueobject.ContactChannel, media valueobject.PhotoGallery, now time.Time) (Listing, error) {
	return l.WithContent(title, description, price, contact, media, now)
}

// MarkAwaitingPayment flags the listing as waiting for its fee
func (s *Service) MarkAwaitingPayment(l Listing, now time.Time) (Listing, error) {
	return l.MarkAwaitingPayment(now)
}
