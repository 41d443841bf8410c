package payment

import "errors"

var (
	// ErrPaymentInProgress rejects a second attempt while one is in flight;
	// attempts are never queued.
	ErrPaymentInProgress = errors.New("a payment attempt is already processing")

	// ErrNotReady means Pay was called before an intent exists or after the
	// flow already succeeded.
	ErrNotReady = errors.New("payment flow is not ready for an attempt")
)

// ProcessorError is a payment failure whose message is shown to the user
// verbatim. No money moved.
type ProcessorError struct {
	Message string
}

func (e *ProcessorError) Error() string {
	return e.Message
}

// ReconciliationError means the processor completed the charge but the
// backend confirmation failed: money moved while the order record did not.
// It is deliberately distinct from ProcessorError: the user must contact
// support, never blind-retry.
type ReconciliationError struct {
	IntentID string
}

func (e *ReconciliationError) Error() string {
	return "Payment succeeded but failed to update order. Please contact support."
}
