package valueobject

import (
	"encoding/json"
	"strings"

	"github.com/inmolista/backend/internal/domain/shared"
)

// TimeSlot represents the preferred time window for being contacted
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
	TimeSlotAnytime   TimeSlot = "anytime"
)

// IsValid checks if the slot is a valid TimeSlot
func (s TimeSlot) IsValid() bool {
	switch s {
	case TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening, TimeSlotAnytime:
		return true
	}
	return false
}

// Label returns the user-facing label for the slot
func (s TimeSlot) Label() string {
	switch s {
	case TimeSlotMorning:
		return "Mañana (8am - 12pm)"
	case TimeSlotAfternoon:
		return "Tarde (12pm - 6pm)"
	case TimeSlotEvening:
		return "Noche (6pm - 9pm)"
	case TimeSlotAnytime:
		return "Cualquier horario"
	}
	return string(s)
}

// String returns the string representation of the slot
func (s TimeSlot) String() string {
	return string(s)
}

const maxContactNoteLength = 200

// ContactChannel is a value object describing how to reach a person: a
// validated phone number, a preferred contact time slot and an optional note.
// It is immutable.
type ContactChannel struct {
	phone PhoneNumber
	slot  TimeSlot
	note  string
}

// NewContactChannel creates a validated contact channel, collecting every
// violated rule before failing
func NewContactChannel(phone PhoneNumber, slot TimeSlot, note string) (ContactChannel, error) {
	var rules shared.RuleCollector

	if phone.IsZero() {
		rules.Add("contact phone number is required")
	}
	if !slot.IsValid() {
		rules.Addf("preferred time slot %q is not valid", string(slot))
	}
	note = strings.TrimSpace(note)
	if len(note) > maxContactNoteLength {
		rules.Addf("note cannot exceed %d characters", maxContactNoteLength)
	}

	if err := rules.Err("ContactChannel", "Invalid contact channel"); err != nil {
		return ContactChannel{}, err
	}
	return ContactChannel{phone: phone, slot: slot, note: note}, nil
}

// Phone returns the contact phone number
func (c ContactChannel) Phone() PhoneNumber {
	return c.phone
}

// PreferredSlot returns the preferred contact time slot
func (c ContactChannel) PreferredSlot() TimeSlot {
	return c.slot
}

// Note returns the optional free-text note
func (c ContactChannel) Note() string {
	return c.note
}

// Equals returns true if both channels are structurally equal
func (c ContactChannel) Equals(other ContactChannel) bool {
	return c.phone.Equals(other.phone) && c.slot == other.slot && c.note == other.note
}

// contactChannelJSON matches the persisted contactInfo record shape
type contactChannelJSON struct {
	PhoneE164     string   `json:"phoneE164"`
	CountryCode   string   `json:"countryCode"`
	PreferredSlot TimeSlot `json:"preferredSlot"`
	Note          string   `json:"note,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (c ContactChannel) MarshalJSON() ([]byte, error) {
	return json.Marshal(contactChannelJSON{
		PhoneE164:     c.phone.E164(),
		CountryCode:   c.phone.CountryCode(),
		PreferredSlot: c.slot,
		Note:          c.note,
	})
}

// UnmarshalJSON implements json.Unmarshaler via the validating factories
func (c *ContactChannel) UnmarshalJSON(data []byte) error {
	var v contactChannelJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	phone, err := NewPhoneNumber(v.PhoneE164)
	if err != nil {
		return err
	}
	channel, err := NewContactChannel(phone, v.PreferredSlot, v.Note)
	if err != nil {
		return err
	}
	*c = channel
	return nil
}

// ContactChannelDTO is a data transfer object for persistence
type ContactChannelDTO struct {
	PhoneE164     string `json:"phoneE164" validate:"required,e164"`
	CountryCode   string `json:"countryCode" validate:"omitempty,len=2"`
	PreferredSlot string `json:"preferredSlot" validate:"required,oneof=morning afternoon evening anytime"`
	Note          string `json:"note,omitempty" validate:"max=200"`
}

// ToDTO converts ContactChannel to ContactChannelDTO for storage
func (c ContactChannel) ToDTO() ContactChannelDTO {
	return ContactChannelDTO{
		PhoneE164:     c.phone.E164(),
		CountryCode:   c.phone.CountryCode(),
		PreferredSlot: string(c.slot),
		Note:          c.note,
	}
}

// ToContactChannel converts ContactChannelDTO back to ContactChannel
func (dto ContactChannelDTO) ToContactChannel() (ContactChannel, error) {
	phone, err := NewPhoneNumber(dto.PhoneE164)
	if err != nil {
		return ContactChannel{}, err
	}
	return NewContactChannel(phone, TimeSlot(dto.PreferredSlot), dto.Note)
}
