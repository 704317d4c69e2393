package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate checks DTO shapes loaded from JSON columns before they are
// handed to the domain Restore factories.
var validate = validator.New()

// marshalColumn serializes a value-object DTO into a JSON column value.
func marshalColumn(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode column: %w", err)
	}
	return string(raw), nil
}

// unmarshalColumn decodes a JSON column into a DTO and validates its shape.
func unmarshalColumn(raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode column: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("column failed shape validation: %w", err)
	}
	return nil
}
