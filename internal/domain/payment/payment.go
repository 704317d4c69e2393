package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// PaymentID identifies a payment
type PaymentID string

// NewPaymentID generates a new payment ID
func NewPaymentID() PaymentID {
	return PaymentID(uuid.NewString())
}

// ParsePaymentID validates a raw ID string
func ParsePaymentID(raw string) (PaymentID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", shared.NewDomainError("INVALID_PAYMENT_ID", "Payment ID cannot be empty")
	}
	return PaymentID(raw), nil
}

// String returns the raw ID value
func (id PaymentID) String() string {
	return string(id)
}

// IsZero returns true for the empty ID
func (id PaymentID) IsZero() bool {
	return id == ""
}

// Provider is the payment service provider
type Provider string

// Culqi is the single supported provider in v1
const ProviderCulqi Provider = "culqi"

// IsValid checks if the provider is supported
func (p Provider) IsValid() bool {
	return p == ProviderCulqi
}

// Label returns the user-facing provider name
func (p Provider) Label() string {
	if p == ProviderCulqi {
		return "Culqi"
	}
	return string(p)
}

// String returns the string representation of the provider
func (p Provider) String() string {
	return string(p)
}

// Method is the rail the payment travels on
type Method string

const (
	MethodCard         Method = "card"
	MethodYape         Method = "yape"
	MethodPlin         Method = "plin"
	MethodBankTransfer Method = "bank_transfer"
)

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodYape, MethodPlin, MethodBankTransfer:
		return true
	}
	return false
}

// Label returns the user-facing method name
func (m Method) Label() string {
	switch m {
	case MethodCard:
		return "Tarjeta de crédito o débito"
	case MethodYape:
		return "Yape"
	case MethodPlin:
		return "Plin"
	case MethodBankTransfer:
		return "Transferencia bancaria"
	}
	return string(m)
}

// String returns the string representation of the method
func (m Method) String() string {
	return string(m)
}

// Status represents the lifecycle state of a payment
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
	StatusExpired    Status = "expired"
)

// IsValid checks if the status is a valid payment Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed,
		StatusCancelled, StatusRefunded, StatusExpired:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled || target == StatusExpired
	case StatusProcessing:
		return target == StatusCompleted || target == StatusFailed ||
			target == StatusCancelled || target == StatusExpired
	case StatusCompleted:
		return target == StatusRefunded
	case StatusFailed, StatusCancelled, StatusRefunded, StatusExpired:
		return false // terminal
	}
	return false
}

// IsTerminal returns true for states no normal flow leaves. Refunds leave
// completed, but that is an exceptional back-office flow.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded, StatusExpired:
		return true
	}
	return false
}

// CanRetry returns true when the payer may start a fresh attempt
func (s Status) CanRetry() bool {
	return s == StatusFailed || s == StatusCancelled || s == StatusExpired
}

// Label returns the user-facing label for the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusProcessing:
		return "En proceso"
	case StatusCompleted:
		return "Completado"
	case StatusFailed:
		return "Fallido"
	case StatusCancelled:
		return "Cancelado"
	case StatusRefunded:
		return "Reembolsado"
	case StatusExpired:
		return "Expirado"
	}
	return string(s)
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

const maxDescriptionLength = 200

// Payment represents a financial transaction that unlocks listing
// activation. It is immutable: every transition returns a new instance.
// Invariants: completed requires completedAt; failed requires errorMessage.
type Payment struct {
	id               PaymentID
	amount           valueobject.Price
	status           Status
	provider         Provider
	method           Method
	providerTxID     string
	referenceCode    string
	description      string
	createdAt        time.Time
	updatedAt        time.Time
	completedAt      *time.Time
	expiresAt        *time.Time
	providerResponse string
	errorMessage     string
	receiptData      string
}

// NewPayment creates a validated pending payment, collecting every violated
// rule before failing
func NewPayment(id PaymentID, amount valueobject.Price, provider Provider, method Method,
	description string, now time.Time, expiresAt *time.Time) (Payment, error) {

	var rules shared.RuleCollector

	if id.IsZero() {
		rules.Add("payment ID cannot be empty")
	}
	if amount.IsZero() {
		rules.Add("amount is required")
	}
	if !provider.IsValid() {
		rules.Addf("provider %q is not supported", string(provider))
	}
	if !method.IsValid() {
		rules.Addf("payment method %q is not supported", string(method))
	}
	description = strings.TrimSpace(description)
	if description == "" {
		rules.Add("description cannot be empty")
	} else if len(description) > maxDescriptionLength {
		rules.Addf("description cannot exceed %d characters", maxDescriptionLength)
	}
	if expiresAt != nil && !expiresAt.After(now) {
		rules.Add("expiration must be in the future")
	}

	if err := rules.Err("Payment", "Invalid payment"); err != nil {
		return Payment{}, err
	}

	return Payment{
		id:            id,
		amount:        amount,
		status:        StatusPending,
		provider:      provider,
		method:        method,
		referenceCode: NewReferenceCode(),
		description:   description,
		createdAt:     now,
		updatedAt:     now,
		expiresAt:     copyTime(expiresAt),
	}, nil
}

// NewReferenceCode generates a short human reference: "PAY-3F2A9C41"
func NewReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "PAY-" + raw[:8]
}

// RestorePayment rebuilds a payment from persisted state. Used by the
// persistence adapter only.
func RestorePayment(id PaymentID, amount valueobject.Price, status Status, provider Provider,
	method Method, providerTxID, referenceCode, description string,
	createdAt, updatedAt time.Time, completedAt, expiresAt *time.Time,
	providerResponse, errorMessage, receiptData string) (Payment, error) {

	var rules shared.RuleCollector
	if !status.IsValid() {
		rules.Addf("status %q is not valid", string(status))
	}
	if status == StatusCompleted && completedAt == nil {
		rules.Add("completed payments must carry a completion timestamp")
	}
	if status == StatusFailed && errorMessage == "" {
		rules.Add("failed payments must carry an error message")
	}
	if referenceCode == "" {
		rules.Add("reference code cannot be empty")
	}
	if err := rules.Err("Payment", "Invalid payment"); err != nil {
		return Payment{}, err
	}

	p, err := NewPayment(id, amount, provider, method, description, createdAt, nil)
	if err != nil {
		return Payment{}, err
	}
	p.status = status
	p.providerTxID = providerTxID
	p.referenceCode = referenceCode
	p.updatedAt = updatedAt
	p.completedAt = copyTime(completedAt)
	p.expiresAt = copyTime(expiresAt)
	p.providerResponse = providerResponse
	p.errorMessage = errorMessage
	p.receiptData = receiptData
	return p, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// ID returns the payment ID
func (p Payment) ID() PaymentID {
	return p.id
}

// Amount returns the payment amount
func (p Payment) Amount() valueobject.Price {
	return p.amount
}

// Status returns the lifecycle status
func (p Payment) Status() Status {
	return p.status
}

// Provider returns the payment provider
func (p Payment) Provider() Provider {
	return p.provider
}

// Method returns the payment method
func (p Payment) Method() Method {
	return p.method
}

// ProviderTransactionID returns the provider-side transaction reference
func (p Payment) ProviderTransactionID() string {
	return p.providerTxID
}

// ReferenceCode returns the human reference code
func (p Payment) ReferenceCode() string {
	return p.referenceCode
}

// Description returns the payment description
func (p Payment) Description() string {
	return p.description
}

// CreatedAt returns the creation timestamp
func (p Payment) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last update timestamp
func (p Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// CompletedAt returns the completion timestamp, nil unless completed
func (p Payment) CompletedAt() *time.Time {
	return copyTime(p.completedAt)
}

// ExpiresAt returns the payment window deadline, nil when unbounded
func (p Payment) ExpiresAt() *time.Time {
	return copyTime(p.expiresAt)
}

// ProviderResponse returns the raw provider payload, if recorded
func (p Payment) ProviderResponse() string {
	return p.providerResponse
}

// ErrorMessage returns the failure reason, set only for failed payments
func (p Payment) ErrorMessage() string {
	return p.errorMessage
}

// ReceiptData returns the receipt payload, if recorded
func (p Payment) ReceiptData() string {
	return p.receiptData
}

// IsExpired reports whether the payment window has closed. Expiration is a
// derived query, not a spontaneous transition: a terminal payment never
// expires retroactively.
func (p Payment) IsExpired(now time.Time) bool {
	return p.expiresAt != nil && now.After(*p.expiresAt) && !p.status.IsTerminal()
}

// CanRetry returns true when the payer may start a fresh attempt
func (p Payment) CanRetry() bool {
	return p.status.CanRetry()
}

// StartProcessing moves the payment to processing, recording the provider
// transaction ID
func (p Payment) StartProcessing(providerTxID string, now time.Time) (Payment, error) {
	if !p.status.CanTransitionTo(StatusProcessing) {
		return Payment{}, shared.NewDomainError("INVALID_STATE",
			"Payment in status "+string(p.status)+" cannot start processing")
	}
	updated := p
	updated.status = StatusProcessing
	updated.providerTxID = strings.TrimSpace(providerTxID)
	updated.updatedAt = now
	return updated, nil
}

// Complete marks the payment as completed, stamping completedAt
func (p Payment) Complete(now time.Time, receiptData, providerResponse string) (Payment, error) {
	if !p.status.CanTransitionTo(StatusCompleted) {
		return Payment{}, shared.NewDomainError("INVALID_STATE",
			"Payment in status "+string(p.status)+" cannot be completed")
	}
	updated := p
	updated.status = StatusCompleted
	updated.completedAt = &now
	updated.updatedAt = now
	updated.receiptData = receiptData
	if providerResponse != "" {
		updated.providerResponse = providerResponse
	}
	return updated, nil
}

// Fail marks the payment as failed. An error message is mandatory.
func (p Payment) Fail(errorMessage string, now time.Time, providerResponse string) (Payment, error) {
	if !p.status.CanTransitionTo(StatusFailed) {
		return Payment{}, shared.NewDomainError("INVALID_STATE",
			"Payment in status "+string(p.status)+" cannot fail")
	}
	errorMessage = strings.TrimSpace(errorMessage)
	if errorMessage == "" {
		return Payment{}, shared.NewDomainError("MISSING_ERROR", "Failed payments require an error message")
	}
	updated := p
	updated.status = StatusFailed
	updated.errorMessage = errorMessage
	updated.updatedAt = now
	if providerResponse != "" {
		updated.providerResponse = providerResponse
	}
	return updated, nil
}

// Cancel marks the payment as cancelled by the payer
func (p Payment) Cancel(now time.Time) (Payment, error) {
	if !p.status.CanTransitionTo(StatusCancelled) {
		return Payment{}, shared.NewDomainError("INVALID_STATE",
			"Payment in status "+string(p.status)+" cannot be cancelled")
	}
	updated := p
	updated.status = StatusCancelled
	updated.updatedAt = now
	return updated, nil
}

// Refund marks a completed payment as refunded
func (p Payment) Refund(now time.Time) (Payment, error) {
	if !p.status.CanTransitionTo(StatusRefunded) {
		return Payment{}, shared.NewDomainError("INVALID_STATE",
			"Only completed payments can be refunded")
	}
	updated := p
	updated.status = StatusRefunded
	updated.updatedAt = now
	return updated, nil
}

// Expire marks the payment as expired once its window has closed
func (p Payment) Expire(now time.Time) (Payment, error) {
	if !p.status.CanTransitionTo(StatusExpired) {
		return Payment{}, shared.NewDomainError("INVALID_STATE",
			"Payment in status "+string(p.status)+" cannot expire")
	}
	if !p.IsExpired(now) {
		return Payment{}, shared.NewDomainError("NOT_EXPIRED", "Payment window has not closed yet")
	}
	updated := p
	updated.status = StatusExpired
	updated.updatedAt = now
	return updated, nil
}

// Equals returns true if both payments hold the same state
func (p Payment) Equals(other Payment) bool {
	return p.id == other.id &&
		p.status == other.status &&
		p.provider == other.provider &&
		p.method == other.method &&
		p.providerTxID == other.providerTxID &&
		p.referenceCode == other.referenceCode &&
		p.amount.Equals(other.amount) &&
		timePtrEqual(p.completedAt, other.completedAt) &&
		timePtrEqual(p.expiresAt, other.expiresAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
