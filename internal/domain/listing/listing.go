package listing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// ListingID identifies a listing
type ListingID string

// NewListingID generates a new listing ID
func NewListingID() ListingID {
	return ListingID(uuid.NewString())
}

// ParseListingID validates a raw ID string
func ParseListingID(raw string) (ListingID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", shared.NewDomainError("INVALID_LISTING_ID", "Listing ID cannot be empty")
	}
	return ListingID(raw), nil
}

// String returns the raw ID value
func (id ListingID) String() string {
	return string(id)
}

// IsZero returns true for the empty ID
func (id ListingID) IsZero() bool {
	return id == ""
}

// Status represents the lifecycle state of a listing
type Status string

const (
	StatusDraft          Status = "draft"
	StatusPaymentPending Status = "payment_pending"
	StatusActive         Status = "active"
	StatusExpired        Status = "expired"
	StatusDeactivated    Status = "deactivated"
)

// IsValid checks if the status is a valid listing Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPaymentPending, StatusActive, StatusExpired, StatusDeactivated:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// active -> draft exists only for the payment-failure revert workflow.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusPaymentPending || target == StatusActive || target == StatusDeactivated
	case StatusPaymentPending:
		return target == StatusActive || target == StatusDraft || target == StatusDeactivated
	case StatusActive:
		return target == StatusExpired || target == StatusDeactivated || target == StatusDraft
	case StatusExpired:
		return target == StatusDeactivated
	case StatusDeactivated:
		return false // terminal
	}
	return false
}

// IsEditable returns true when listing content may change
func (s Status) IsEditable() bool {
	return s == StatusDraft || s == StatusActive
}

// NeedsPayment returns true when the listing still requires a payment to go
// live
func (s Status) NeedsPayment() bool {
	return s == StatusDraft || s == StatusPaymentPending
}

// Label returns the user-facing label for the status
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Borrador"
	case StatusPaymentPending:
		return "Pago pendiente"
	case StatusActive:
		return "Publicado"
	case StatusExpired:
		return "Expirado"
	case StatusDeactivated:
		return "Desactivado"
	}
	return string(s)
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

const (
	minTitleLength       = 5
	maxTitleLength       = 100
	minDescriptionLength = 20
	maxDescriptionLength = 2000
)

// Listing represents a time-bound paid publication window for a property.
// It is immutable: every transition returns a new instance.
// Invariant: once active, publishedAt and expiresAt are both set and differ
// by exactly the configured publication duration.
type Listing struct {
	id          ListingID
	title       string
	description string
	price       valueobject.Price
	contact     *valueobject.ContactChannel
	media       valueobject.PhotoGallery
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
	publishedAt *time.Time
	expiresAt   *time.Time
}

// NewListing creates a validated draft listing, collecting every violated
// rule before failing
func NewListing(id ListingID, title, description string, price valueobject.Price,
	contact *valueobject.ContactChannel, media valueobject.PhotoGallery, now time.Time) (Listing, error) {

	var rules shared.RuleCollector

	if id.IsZero() {
		rules.Add("listing ID cannot be empty")
	}

	title = strings.TrimSpace(title)
	if len(title) < minTitleLength {
		rules.Addf("title must have at least %d characters", minTitleLength)
	} else if len(title) > maxTitleLength {
		rules.Addf("title cannot exceed %d characters", maxTitleLength)
	}

	description = strings.TrimSpace(description)
	if len(description) < minDescriptionLength {
		rules.Addf("description must have at least %d characters", minDescriptionLength)
	} else if len(description) > maxDescriptionLength {
		rules.Addf("description cannot exceed %d characters", maxDescriptionLength)
	}

	if price.IsZero() {
		rules.Add("price is required")
	}
	if media.Count() > valueobject.ListingMaxPhotos {
		rules.Addf("listing media cannot exceed %d photos", valueobject.ListingMaxPhotos)
	}

	if err := rules.Err("Listing", "Invalid listing"); err != nil {
		return Listing{}, err
	}

	return Listing{
		id:          id,
		title:       title,
		description: description,
		price:       price,
		contact:     copyContact(contact),
		media:       media,
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreListing rebuilds a listing from persisted state. Used by the
// persistence adapter only. Active listings must carry an ordered
// publication window; its width was fixed by Activate and is trusted from
// the store, since the configured duration may have changed since
// publication.
func RestoreListing(id ListingID, title, description string, price valueobject.Price,
	contact *valueobject.ContactChannel, media valueobject.PhotoGallery, status Status,
	createdAt, updatedAt time.Time, publishedAt, expiresAt *time.Time) (Listing, error) {

	l, err := NewListing(id, title, description, price, contact, media, createdAt)
	if err != nil {
		return Listing{}, err
	}
	if !status.IsValid() {
		return Listing{}, shared.NewValidationError("Listing", "Invalid listing",
			[]string{"status " + string(status) + " is not valid"})
	}
	if status == StatusActive && (publishedAt == nil || expiresAt == nil) {
		return Listing{}, shared.NewValidationError("Listing", "Invalid listing",
			[]string{"active listings must carry publication and expiration timestamps"})
	}
	if publishedAt != nil && expiresAt != nil && !expiresAt.After(*publishedAt) {
		return Listing{}, shared.NewValidationError("Listing", "Invalid listing",
			[]string{"expiration must come after publication"})
	}
	l.status = status
	l.updatedAt = updatedAt
	l.publishedAt = copyTime(publishedAt)
	l.expiresAt = copyTime(expiresAt)
	return l, nil
}

func copyContact(c *valueobject.ContactChannel) *valueobject.ContactChannel {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// ID returns the listing ID
func (l Listing) ID() ListingID {
	return l.id
}

// Title returns the listing title
func (l Listing) Title() string {
	return l.title
}

// Description returns the listing description
func (l Listing) Description() string {
	return l.description
}

// Price returns the asking price
func (l Listing) Price() valueobject.Price {
	return l.price
}

// ContactChannel returns the optional listing-level contact channel
func (l Listing) ContactChannel() *valueobject.ContactChannel {
	return copyContact(l.contact)
}

// Media returns the photo gallery
func (l Listing) Media() valueobject.PhotoGallery {
	return l.media
}

// Status returns the lifecycle status
func (l Listing) Status() Status {
	return l.status
}

// CreatedAt returns the creation timestamp
func (l Listing) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns the last update timestamp
func (l Listing) UpdatedAt() time.Time {
	return l.updatedAt
}

// PublishedAt returns the publication timestamp, nil before activation
func (l Listing) PublishedAt() *time.Time {
	return copyTime(l.publishedAt)
}

// ExpiresAt returns the expiration timestamp, nil before activation
func (l Listing) ExpiresAt() *time.Time {
	return copyTime(l.expiresAt)
}

// IsEditable returns true when listing content may change
func (l Listing) IsEditable() bool {
	return l.status.IsEditable()
}

// NeedsPayment returns true when the listing still requires a payment
func (l Listing) NeedsPayment() bool {
	return l.status.NeedsPayment()
}

// IsSearchable returns true when the listing should appear in search:
// active and not past its expiration
func (l Listing) IsSearchable(now time.Time) bool {
	return l.status == StatusActive && l.expiresAt != nil && !now.After(*l.expiresAt)
}

// IsPastExpiration returns true when the publication window has closed
func (l Listing) IsPastExpiration(now time.Time) bool {
	return l.expiresAt != nil && now.After(*l.expiresAt)
}

// MarkAwaitingPayment transitions the listing to payment_pending
func (l Listing) MarkAwaitingPayment(now time.Time) (Listing, error) {
	if l.status == StatusPaymentPending {
		return Listing{}, shared.NewDomainError("ALREADY_PENDING", "Listing is already awaiting payment")
	}
	if !l.status.CanTransitionTo(StatusPaymentPending) {
		return Listing{}, shared.NewDomainError("INVALID_STATE",
			"Listing in status "+string(l.status)+" cannot await payment")
	}
	updated := l
	updated.status = StatusPaymentPending
	updated.updatedAt = now
	return updated, nil
}

// Activate publishes the listing: publishedAt = now, expiresAt = now +
// duration, exactly. Allowed from draft or payment_pending.
func (l Listing) Activate(now time.Time, duration time.Duration) (Listing, error) {
	if !l.status.CanTransitionTo(StatusActive) {
		return Listing{}, shared.NewDomainError("INVALID_STATE",
			"Listing in status "+string(l.status)+" cannot be activated")
	}
	if duration <= 0 {
		return Listing{}, shared.NewDomainError("INVALID_DURATION", "Publication duration must be positive")
	}
	expires := now.Add(duration)
	updated := l
	updated.status = StatusActive
	updated.publishedAt = &now
	updated.expiresAt = &expires
	updated.updatedAt = now
	return updated, nil
}

// Expire closes an active listing past its expiration. Driven by a periodic
// external trigger; the core never expires listings spontaneously.
func (l Listing) Expire(now time.Time) (Listing, error) {
	if l.status != StatusActive {
		return Listing{}, shared.NewDomainError("INVALID_STATE", "Only active listings can expire")
	}
	if !l.IsPastExpiration(now) {
		return Listing{}, shared.NewDomainError("NOT_EXPIRED", "Listing has not reached its expiration yet")
	}
	updated := l
	updated.status = StatusExpired
	updated.updatedAt = now
	return updated, nil
}

// Deactivate removes the listing from search permanently (owner-initiated)
func (l Listing) Deactivate(now time.Time) (Listing, error) {
	if l.status == StatusDeactivated {
		return Listing{}, shared.NewDomainError("ALREADY_DEACTIVATED", "Listing is already deactivated")
	}
	updated := l
	updated.status = StatusDeactivated
	updated.updatedAt = now
	return updated, nil
}

// RevertToDraft returns the listing to draft after a payment failure so the
// owner can retry without re-entering content. Publication timestamps are
// cleared; all content fields are preserved.
func (l Listing) RevertToDraft(now time.Time) (Listing, error) {
	if !l.status.CanTransitionTo(StatusDraft) {
		return Listing{}, shared.NewDomainError("INVALID_STATE",
			"Listing in status "+string(l.status)+" cannot revert to draft")
	}
	updated := l
	updated.status = StatusDraft
	updated.publishedAt = nil
	updated.expiresAt = nil
	updated.updatedAt = now
	return updated, nil
}

// WithContent returns a new listing with updated content fields. Only
// allowed while the listing is editable; the lifecycle fields are untouched.
func (l Listing) WithContent(title, description string, price valueobject.Price,
	contact *valueobject.ContactChannel, media valueobject.PhotoGallery, now time.Time) (Listing, error) {

	if !l.IsEditable() {
		return Listing{}, shared.NewDomainError("NOT_EDITABLE",
			"Listing in status "+string(l.status)+" cannot be edited")
	}

	revalidated, err := NewListing(l.id, title, description, price, contact, media, l.createdAt)
	if err != nil {
		return Listing{}, err
	}
	revalidated.status = l.status
	revalidated.publishedAt = copyTime(l.publishedAt)
	revalidated.expiresAt = copyTime(l.expiresAt)
	revalidated.updatedAt = now
	return revalidated, nil
}

// Equals returns true if both listings hold the same state
func (l Listing) Equals(other Listing) bool {
	if l.id != other.id || l.title != other.title || l.description != other.description ||
		l.status != other.status || !l.price.Equals(other.price) || !l.media.Equals(other.media) ||
		!l.createdAt.Equal(other.createdAt) || !l.updatedAt.Equal(other.updatedAt) {
		return false
	}
	if !timePtrEqual(l.publishedAt, other.publishedAt) || !timePtrEqual(l.expiresAt, other.expiresAt) {
		return false
	}
	if l.contact == nil || other.contact == nil {
		return l.contact == other.contact
	}
	return l.contact.Equals(*other.contact)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
