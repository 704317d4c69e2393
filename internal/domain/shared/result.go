package shared

// Result is an explicit success-or-failure container used at orchestration
// boundaries. Validation failures travel as data (message + violations)
// instead of escaping as errors; only programmer-error invariants panic.
type Result[T any] struct {
	value      T
	err        error
	message    string
	violations []string
	ok         bool
}

// Ok creates a successful result carrying a value
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail creates a failed result with a message and the violated rules
func Fail[T any](message string, violations ...string) Result[T] {
	return Result[T]{message: message, violations: violations}
}

// FailErr creates a failed result from an error. ValidationError messages and
// violation lists are unwrapped into the result.
func FailErr[T any](err error) Result[T] {
	if ve, ok := AsValidationError(err); ok {
		return Result[T]{err: err, message: ve.Message, violations: ve.Violations}
	}
	return Result[T]{err: err, message: err.Error()}
}

// IsOk returns true for a successful result
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the carried value; the zero value on failure
func (r Result[T]) Value() T {
	return r.value
}

// Message returns the failure message; empty on success
func (r Result[T]) Message() string {
	return r.message
}

// Violations returns the violated rules attached to a failure
func (r Result[T]) Violations() []string {
	return r.violations
}

// Err returns the originating error, when the failure wraps one
func (r Result[T]) Err() error {
	return r.err
}
