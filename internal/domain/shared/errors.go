package shared

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// ValidationError is raised by entity and value object factories when one or
// more business rules are violated. It always carries the complete list of
// violations: a factory never fails on the first broken rule alone, and never
// returns a partially-valid instance.
type ValidationError struct {
	Entity     string   `json:"entity"`
	Message    string   `json:"message"`
	Violations []string `json:"violations"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Violations, "; "))
}

// NewValidationError creates a validation error for the given entity
func NewValidationError(entity, message string, violations []string) *ValidationError {
	return &ValidationError{
		Entity:     entity,
		Message:    message,
		Violations: violations,
	}
}

// AsValidationError extracts a *ValidationError from an error chain, if present
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// RuleCollector accumulates rule violations during construction so a factory
// can report every broken rule at once.
type RuleCollector struct {
	violations []string
}

// Addf records a violated rule
func (c *RuleCollector) Addf(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

// Add records a violated rule
func (c *RuleCollector) Add(violation string) {
	c.violations = append(c.violations, violation)
}

// Merge appends the violations of another collector
func (c *RuleCollector) Merge(other *RuleCollector) {
	c.violations = append(c.violations, other.violations...)
}

// HasViolations returns true if at least one rule was violated
func (c *RuleCollector) HasViolations() bool {
	return len(c.violations) > 0
}

// Violations returns the collected violations in insertion order
func (c *RuleCollector) Violations() []string {
	return c.violations
}

// Err builds a ValidationError for the entity, or nil when nothing was violated
func (c *RuleCollector) Err(entity, message string) error {
	if !c.HasViolations() {
		return nil
	}
	return NewValidationError(entity, message, c.violations)
}
