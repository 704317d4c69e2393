package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inmolista/backend/internal/domain/shared"
)

// countryByCallingCode maps international calling codes to ISO 3166-1 alpha-2
// country codes for the markets the platform serves.
var countryByCallingCode = map[string]string{
	"1":  "US",
	"34": "ES",
	"51": "PE",
	"52": "MX",
	"54": "AR",
	"55": "BR",
	"56": "CL",
	"57": "CO",
}

// nationalLengthByCountry holds min/max significant-digit counts per country.
// Countries without an entry fall back to the generic 6-12 range.
var nationalLengthByCountry = map[string][2]int{
	"PE": {9, 9},
	"CL": {9, 9},
	"CO": {10, 10},
	"MX": {10, 10},
	"AR": {10, 11},
	"BR": {10, 11},
	"US": {10, 10},
	"ES": {9, 9},
}

const (
	defaultCallingCode    = "51" // local numbers without a prefix are Peruvian
	genericMinNationalLen = 6
	genericMaxNationalLen = 12
)

// PhoneNumber is a value object representing a validated international phone
// number in E.164 form. It is immutable.
type PhoneNumber struct {
	callingCode string // digits after "+", without leading zeros
	national    string // national significant number, digits only
	countryCode string // ISO 3166-1 alpha-2, empty when calling code is unknown
}

// NewPhoneNumber parses and validates a phone number from free text.
// Accepted inputs: "+51 987 654 321", "0051-987654321", "987654321"
// (local format, assumed Peruvian). All violated rules are collected.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	var rules shared.RuleCollector

	cleaned := normalizePhoneInput(raw)
	if cleaned == "" {
		rules.Add("phone number cannot be empty")
		return PhoneNumber{}, rules.Err("PhoneNumber", "Invalid phone number")
	}

	var callingCode, national string
	switch {
	case strings.HasPrefix(cleaned, "+"):
		digits := strings.TrimPrefix(cleaned, "+")
		if !isDigits(digits) {
			rules.Add("phone number may only contain digits after the + prefix")
			return PhoneNumber{}, rules.Err("PhoneNumber", "Invalid phone number")
		}
		callingCode, national = splitCallingCode(digits)
		if callingCode == "" {
			rules.Addf("unrecognized country calling code in %q", raw)
		}
	case isDigits(cleaned):
		// Local format: assume the default market.
		callingCode, national = defaultCallingCode, cleaned
	default:
		rules.Add("phone number may only contain digits, spaces, dashes, dots and parentheses")
		return PhoneNumber{}, rules.Err("PhoneNumber", "Invalid phone number")
	}

	country := countryByCallingCode[callingCode]
	if national != "" {
		minLen, maxLen := nationalLengthBounds(country)
		if len(national) < minLen || len(national) > maxLen {
			if minLen == maxLen {
				rules.Addf("national number must have exactly %d digits for %s", minLen, displayCountry(country))
			} else {
				rules.Addf("national number must have between %d and %d digits", minLen, maxLen)
			}
		}
	} else if callingCode != "" {
		rules.Add("phone number is missing the national number")
	}

	if err := rules.Err("PhoneNumber", "Invalid phone number"); err != nil {
		return PhoneNumber{}, err
	}

	return PhoneNumber{
		callingCode: callingCode,
		national:    national,
		countryCode: country,
	}, nil
}

// MustNewPhoneNumber parses a phone number, panics on error
func MustNewPhoneNumber(raw string) PhoneNumber {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func normalizePhoneInput(raw string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		default:
			sb.WriteRune(r)
		}
	}
	s := sb.String()
	// International dialing prefix "00" is equivalent to "+".
	if strings.HasPrefix(s, "00") {
		s = "+" + strings.TrimPrefix(s, "00")
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitCallingCode finds the longest known calling code prefix (1-3 digits)
func splitCallingCode(digits string) (callingCode, national string) {
	for l := 3; l >= 1; l-- {
		if len(digits) <= l {
			continue
		}
		if _, ok := countryByCallingCode[digits[:l]]; ok {
			return digits[:l], digits[l:]
		}
	}
	return "", digits
}

func nationalLengthBounds(country string) (int, int) {
	if bounds, ok := nationalLengthByCountry[country]; ok {
		return bounds[0], bounds[1]
	}
	return genericMinNationalLen, genericMaxNationalLen
}

func displayCountry(country string) string {
	if country == "" {
		return "this country"
	}
	return country
}

// E164 returns the number in E.164 form: "+51987654321"
func (p PhoneNumber) E164() string {
	return "+" + p.callingCode + p.national
}

// Pretty returns a human-readable form with digit groups: "+51 987 654 321"
func (p PhoneNumber) Pretty() string {
	var groups []string
	n := p.national
	for len(n) > 3 {
		groups = append(groups, n[:3])
		n = n[3:]
	}
	if n != "" {
		groups = append(groups, n)
	}
	return "+" + p.callingCode + " " + strings.Join(groups, " ")
}

// CallingCode returns the international calling code digits ("51")
func (p PhoneNumber) CallingCode() string {
	return p.callingCode
}

// CountryCode returns the detected ISO country code ("PE")
func (p PhoneNumber) CountryCode() string {
	return p.countryCode
}

// NationalNumber returns the national significant number digits
func (p PhoneNumber) NationalNumber() string {
	return p.national
}

// DigitsOnly returns every digit including the calling code, no "+"
func (p PhoneNumber) DigitsOnly() string {
	return p.callingCode + p.national
}

// IsZero returns true for the zero value (no phone set)
func (p PhoneNumber) IsZero() bool {
	return p.callingCode == "" && p.national == ""
}

// Equals returns true if both numbers are identical
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.callingCode == other.callingCode && p.national == other.national
}

// SameDigits compares two numbers digit-by-digit, ignoring formatting
func (p PhoneNumber) SameDigits(other PhoneNumber) bool {
	return p.DigitsOnly() == other.DigitsOnly()
}

// String returns the E.164 representation
func (p PhoneNumber) String() string {
	return p.E164()
}

// MarshalJSON implements json.Marshaler, storing the E.164 string
func (p PhoneNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.E164())
}

// UnmarshalJSON implements json.Unmarshaler via the validating factory
func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("phone number must be a JSON string: %w", err)
	}
	parsed, err := NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
