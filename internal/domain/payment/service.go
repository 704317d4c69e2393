package payment

import (
	"time"

	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// Service exposes payment factory and lifecycle helpers. It is stateless;
// the listing fee and payment window come from injected configuration.
type Service struct {
	listingFee    valueobject.Price
	paymentWindow time.Duration
}

// NewService creates a payment service with the configured listing fee and
// payment window
func NewService(listingFee valueobject.Price, paymentWindow time.Duration) *Service {
	return &Service{listingFee: listingFee, paymentWindow: paymentWindow}
}

// ListingFee returns the configured one-time listing fee
func (s *Service) ListingFee() valueobject.Price {
	return s.listingFee
}

// CreateListingFeePayment builds a pending payment for the listing fee. The
// amount is always the configured fee; callers cannot override it. On
// failure it returns a *shared.ValidationError listing every violated rule.
func (s *Service) CreateListingFeePayment(id PaymentID, provider Provider, method Method,
	description string, now time.Time) (Payment, error) {

	if id.IsZero() {
		id = NewPaymentID()
	}
	var expiresAt *time.Time
	if s.paymentWindow > 0 {
		deadline := now.Add(s.paymentWindow)
		expiresAt = &deadline
	}
	return NewPayment(id, s.listingFee, provider, method, description, now, expiresAt)
}

// IsListingFeeAmount reports whether the payment carries exactly the
// configured fee
func (s *Service) IsListingFeeAmount(p Payment) bool {
	return p.Amount().Equals(s.listingFee)
}

// StartProcessing moves a pending payment into processing
func (s *Service) StartProcessing(p Payment, providerTxID string, now time.Time) (Payment, error) {
	return p.StartProcessing(providerTxID, now)
}

// Complete finishes a processing payment
func (s *Service) Complete(p Payment, now time.Time, receiptData, providerResponse string) (Payment, error) {
	return p.Complete(now, receiptData, providerResponse)
}

// Fail marks a processing payment as failed
func (s *Service) Fail(p Payment, errorMessage string, now time.Time, providerResponse string) (Payment, error) {
	return p.Fail(errorMessage, now, providerResponse)
}

// ProcessExpiry expires the payment when its window has closed. Returns the
// payment unchanged, with changed=false, otherwise.
func (s *Service) ProcessExpiry(p Payment, now time.Time) (Payment, bool) {
	if !p.IsExpired(now) {
		return p, false
	}
	expired, err := p.Expire(now)
	if err != nil {
		return p, false
	}
	return expired, true
}
