package domain

import "fmt"

// Error types for consistent error handling across the dashboard BFF.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in a core-bank call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden indicates the user lacks permission for the operation.
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Action)
}

// ============================================================
// Calculator-level errors. These are local validation failures the
// handlers surface as inline form errors, never as crashes.
// ============================================================

// ErrAmountOutOfRange indicates a principal outside the plan's bounds.
type ErrAmountOutOfRange struct {
	Amount float64
	Min    float64
	Max    *float64
}

func (e *ErrAmountOutOfRange) Error() string {
	if e.Max != nil {
		return fmt.Sprintf("amount %.2f outside plan range [%.2f, %.2f]", e.Amount, e.Min, *e.Max)
	}
	return fmt.Sprintf("amount %.2f below plan minimum %.2f", e.Amount, e.Min)
}

// ErrBelowMinimum indicates a proposed limit below the policy floor.
type ErrBelowMinimum struct {
	Field    string
	Proposed float64
	Floor    float64
}

func (e *ErrBelowMinimum) Error() string {
	return fmt.Sprintf("%s limit %.2f below minimum %.2f", e.Field, e.Proposed, e.Floor)
}

// ErrAboveMaximum indicates a proposed limit above the card type's ceiling.
type ErrAboveMaximum struct {
	Field    string
	Proposed float64
	Ceiling  float64
}

func (e *ErrAboveMaximum) Error() string {
	return fmt.Sprintf("%s limit %.2f above ceiling %.2f", e.Field, e.Proposed, e.Ceiling)
}

// ErrInconsistentLimits indicates a daily limit exceeding the monthly one.
type ErrInconsistentLimits struct {
	Daily   float64
	Monthly float64
}

func (e *ErrInconsistentLimits) Error() string {
	return fmt.Sprintf("daily limit %.2f exceeds monthly limit %.2f", e.Daily, e.Monthly)
}

// ErrDivision indicates a would-be division by zero. Defensive only: the
// inputs that trigger it are rejected upstream at plan creation.
type ErrDivision struct {
	Operation string
}

func (e *ErrDivision) Error() string {
	return fmt.Sprintf("division by zero in %s", e.Operation)
}
