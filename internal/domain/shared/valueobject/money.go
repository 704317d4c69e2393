package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency represents a supported currency code (ISO 4217)
type Currency string

const (
	PEN Currency = "PEN" // Peruvian Sol (default)
	USD Currency = "USD" // US Dollar
)

// DefaultCurrency is the default currency for the marketplace
const DefaultCurrency = PEN

// IsValid checks if the currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case PEN, USD:
		return true
	}
	return false
}

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case PEN:
		return "S/"
	case USD:
		return "$"
	}
	return string(c)
}

// String returns the string representation of the currency
func (c Currency) String() string {
	return string(c)
}

// Market-specific price ceilings. Listings above these are data-entry errors,
// not luxury properties.
var maxAmountByCurrency = map[Currency]decimal.Decimal{
	PEN: decimal.NewFromInt(50_000_000),
	USD: decimal.NewFromInt(15_000_000),
}

// Peru groups thousands with commas and uses a dot decimal separator.
var pricePrinter = message.NewPrinter(language.Make("es-PE"))

// Price is a value object representing a monetary amount in a supported
// currency. It is immutable - all operations return new Price instances.
type Price struct {
	amount   decimal.Decimal
	currency Currency
}

// NewPrice creates a new Price, collecting every violated rule before failing
func NewPrice(amount decimal.Decimal, currency Currency) (Price, error) {
	var rules shared.RuleCollector

	if !currency.IsValid() {
		rules.Addf("currency %q is not supported", string(currency))
	}
	if !amount.IsPositive() {
		rules.Add("amount must be greater than zero")
	}
	if max, ok := maxAmountByCurrency[currency]; ok && amount.GreaterThan(max) {
		rules.Addf("amount exceeds the %s maximum of %s", currency, max.String())
	}

	if err := rules.Err("Price", "Invalid price"); err != nil {
		return Price{}, err
	}
	return Price{amount: amount, currency: currency}, nil
}

// NewPriceFromFloat creates a Price from a float64 amount
func NewPriceFromFloat(amount float64, currency Currency) (Price, error) {
	return NewPrice(decimal.NewFromFloat(amount), currency)
}

// NewPriceFromString creates a Price from a decimal string amount
func NewPriceFromString(amount string, currency Currency) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, shared.NewValidationError("Price", "Invalid price",
			[]string{fmt.Sprintf("amount %q is not a valid number", amount)})
	}
	return NewPrice(d, currency)
}

// MustNewPrice creates a Price, panics on error. Reserved for constants and
// tests where the inputs are known valid.
func MustNewPrice(amount decimal.Decimal, currency Currency) Price {
	p, err := NewPrice(amount, currency)
	if err != nil {
		panic(err)
	}
	return p
}

// Amount returns the decimal amount
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// Currency returns the currency code
func (p Price) Currency() Currency {
	return p.currency
}

// IsZero returns true for the zero value (no price set)
func (p Price) IsZero() bool {
	return p.currency == "" && p.amount.IsZero()
}

// Equals returns true if both prices have the same amount and currency
func (p Price) Equals(other Price) bool {
	return p.currency == other.currency && p.amount.Equal(other.amount)
}

// Add returns a new Price with the sum of both amounts.
// Returns error if currencies don't match.
func (p Price) Add(other Price) (Price, error) {
	if p.currency != other.currency {
		return Price{}, fmt.Errorf("cannot add prices with different currencies: %s and %s", p.currency, other.currency)
	}
	return Price{amount: p.amount.Add(other.amount), currency: p.currency}, nil
}

// Subtract returns a new Price with the difference.
// Returns error if currencies don't match.
func (p Price) Subtract(other Price) (Price, error) {
	if p.currency != other.currency {
		return Price{}, fmt.Errorf("cannot subtract prices with different currencies: %s and %s", p.currency, other.currency)
	}
	return Price{amount: p.amount.Sub(other.amount), currency: p.currency}, nil
}

// Multiply returns a new Price multiplied by the given factor
func (p Price) Multiply(factor decimal.Decimal) Price {
	return Price{amount: p.amount.Mul(factor), currency: p.currency}
}

// PerUnitArea returns the price per square meter for the given area.
// Returns error if area is not positive.
func (p Price) PerUnitArea(areaM2 decimal.Decimal) (Price, error) {
	if !areaM2.IsPositive() {
		return Price{}, fmt.Errorf("area must be positive, got %s", areaM2.String())
	}
	return Price{amount: p.amount.DivRound(areaM2, 2), currency: p.currency}, nil
}

// LessThan returns true if this price is less than the other.
// Returns error if currencies don't match.
func (p Price) LessThan(other Price) (bool, error) {
	if p.currency != other.currency {
		return false, fmt.Errorf("cannot compare prices with different currencies: %s and %s", p.currency, other.currency)
	}
	return p.amount.LessThan(other.amount), nil
}

// GreaterThan returns true if this price is greater than the other.
// Returns error if currencies don't match.
func (p Price) GreaterThan(other Price) (bool, error) {
	if p.currency != other.currency {
		return false, fmt.Errorf("cannot compare prices with different currencies: %s and %s", p.currency, other.currency)
	}
	return p.amount.GreaterThan(other.amount), nil
}

// MustCompare compares two prices, panics if currencies don't match.
// Comparing across currencies without converting first is a programmer error.
func (p Price) MustCompare(other Price) int {
	if p.currency != other.currency {
		panic(fmt.Sprintf("cannot compare prices with different currencies: %s and %s", p.currency, other.currency))
	}
	return p.amount.Cmp(other.amount)
}

// Format returns the price with currency symbol and thousands separators.
// Whole amounts drop the decimals, fractional amounts always show cents:
// "S/ 19", "S/ 19,500.50", "$ 1,200"
func (p Price) Format() string {
	rounded := p.amount.Round(2)
	f, _ := rounded.Float64()
	if rounded.IsInteger() {
		return fmt.Sprintf("%s %s", p.currency.Symbol(),
			pricePrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(0))))
	}
	return fmt.Sprintf("%s %s", p.currency.Symbol(),
		pricePrinter.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2))))
}

// FormatPerSquareMeter renders a per-unit-area price: "S/ 1,250/m²"
func (p Price) FormatPerSquareMeter() string {
	return p.Format() + "/m²"
}

// Compact returns an abbreviated amount with the currency symbol:
// "S/ 950", "S/ 8.5K", "$ 1.2M"
func (p Price) Compact() string {
	abs := p.amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return fmt.Sprintf("%s %sM", p.currency.Symbol(), trimScaled(p.amount, 1_000_000))
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return fmt.Sprintf("%s %sK", p.currency.Symbol(), trimScaled(p.amount, 1_000))
	default:
		return fmt.Sprintf("%s %s", p.currency.Symbol(), trimTrailingZero(p.amount.Round(2)))
	}
}

func trimScaled(amount decimal.Decimal, scale int64) string {
	return trimTrailingZero(amount.DivRound(decimal.NewFromInt(scale), 1))
}

func trimTrailingZero(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// String returns the formatted price
func (p Price) String() string {
	return p.Format()
}

// ParsePrice parses a formatted price string back into a Price:
// "S/ 19" and "$ 1,200.50" round-trip through Format.
func ParsePrice(formatted string) (Price, error) {
	s := strings.TrimSpace(formatted)

	var currency Currency
	switch {
	case strings.HasPrefix(s, "S/"):
		currency = PEN
		s = strings.TrimPrefix(s, "S/")
	case strings.HasPrefix(s, "US$"):
		currency = USD
		s = strings.TrimPrefix(s, "US$")
	case strings.HasPrefix(s, "$"):
		currency = USD
		s = strings.TrimPrefix(s, "$")
	default:
		return Price{}, shared.NewValidationError("Price", "Invalid price",
			[]string{fmt.Sprintf("unrecognized currency symbol in %q", formatted)})
	}

	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return NewPriceFromString(s, currency)
}

// priceJSON matches the persisted price record shape
type priceJSON struct {
	Amount       string   `json:"amount"`
	CurrencyCode Currency `json:"currencyCode"`
}

// MarshalJSON implements json.Marshaler
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(priceJSON{
		Amount:       p.amount.String(),
		CurrencyCode: p.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It delegates to NewPrice so a
// price can never be deserialized into an invalid state.
func (p *Price) UnmarshalJSON(data []byte) error {
	var v priceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewPriceFromString(v.Amount, v.CurrencyCode)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PriceDTO is a data transfer object for persistence
type PriceDTO struct {
	Amount       string `json:"amount" validate:"required"`
	CurrencyCode string `json:"currencyCode" validate:"required,oneof=PEN USD"`
}

// ToDTO converts Price to PriceDTO for storage
func (p Price) ToDTO() PriceDTO {
	return PriceDTO{
		Amount:       p.amount.String(),
		CurrencyCode: string(p.currency),
	}
}

// ToPrice converts PriceDTO back to Price
func (dto PriceDTO) ToPrice() (Price, error) {
	return NewPriceFromString(dto.Amount, Currency(dto.CurrencyCode))
}
