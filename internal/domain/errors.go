package domain

import "fmt"

// ValidationError means a catalog write violates an entity invariant.
// The store is left unchanged; the caller gets this synchronously.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid listing: %s %s", e.Field, e.Reason)
}

// QuantityOutOfRangeError means a purchase quantity is <= 0 or exceeds
// the listing's available quantity. No partial computation is performed.
type QuantityOutOfRangeError struct {
	Requested int64
	Available int64
}

func (e *QuantityOutOfRangeError) Error() string {
	return fmt.Sprintf("quantity %d out of range (available %d)", e.Requested, e.Available)
}

// InvalidPaymentMethodError means the payment method is not in the policy table.
type InvalidPaymentMethodError struct {
	Method string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("unrecognized payment method %q", e.Method)
}
