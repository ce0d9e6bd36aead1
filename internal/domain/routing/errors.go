package routing

import (
	"errors"
	"fmt"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

var (
	// ErrNoAvailableMethods means no method profile matches the request's
	// country, currency and amount. Fatal, never retried here.
	ErrNoAvailableMethods = errors.New("no available payment methods")

	// ErrNoValidRoutes means available methods exist but none passed the
	// amount-limit re-check during analysis. Fatal.
	ErrNoValidRoutes = errors.New("no valid routes")
)

// ValidationError marks a malformed request. Fatal, not retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// AllMethodsFailedError is returned when multi-method fallback exhausts its
// candidate list. Carries the last per-method error and every method tried.
type AllMethodsFailedError struct {
	Attempted []method.Method
	LastErr   error
}

func (e *AllMethodsFailedError) Error() string {
	return fmt.Sprintf("all payment methods failed after %d attempts: %v", len(e.Attempted), e.LastErr)
}

func (e *AllMethodsFailedError) Unwrap() error {
	return e.LastErr
}

// ProcessorError wraps a failed or erroring external processor call with the
// method that produced it. Surfaced as a failed result, never a panic, so
// fallback and split accounting can inspect it.
type ProcessorError struct {
	Method method.Method
	Code   string
	Err    error
}

func (e *ProcessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("processor %s: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("processor %s failed with code %s", e.Method, e.Code)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// RoutingError marks a failure inside the analysis/selection pipeline itself.
// The orchestrator absorbs it and degrades to the reliability-only path.
type RoutingError struct {
	Err error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing: %v", e.Err)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}
