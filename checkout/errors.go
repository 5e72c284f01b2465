package checkout

import (
	"errors"
	"fmt"
)

type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
	StatusUnavailable
)

// User-facing messages for checkout failures.
const (
	ErrMsgNotAuthenticated    = "Please sign in to place an order."
	ErrMsgSingleItem          = "Please leave exactly one item in your cart to check out."
	ErrMsgInvalidPayment      = "Please choose a valid payment method."
	ErrMsgSubmitInProgress    = "Your order is already being placed."
	ErrMsgAlreadyCompleted    = "This order has already been placed."
	ErrMsgOrderFailed         = "Failed to place order. Please try again."
	ErrMsgFieldRequiredFormat = "%s is required."
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	case StatusUnavailable:
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// CommandError is a checkout failure with a message fit for the customer.
type CommandError struct {
	Code    StatusCode
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is matches a sentinel CommandError by code and message.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok || t.Err != nil {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

func NewFailedPrecondition(message string) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: message}
}

var (
	ErrNotAuthenticated     = NewFailedPrecondition(ErrMsgNotAuthenticated)
	ErrSingleItem           = NewFailedPrecondition(ErrMsgSingleItem)
	ErrInvalidPaymentMethod = NewInvalidArgument(ErrMsgInvalidPayment)
	ErrSubmitInProgress     = NewFailedPrecondition(ErrMsgSubmitInProgress)
	ErrAlreadyCompleted     = NewFailedPrecondition(ErrMsgAlreadyCompleted)

	// ErrMissingField is wrapped by every required-field error.
	ErrMissingField = errors.New("missing required field")
	// ErrSubmissionFailed is wrapped when the order service call fails.
	ErrSubmissionFailed = errors.New("order submission failed")
)

func missingField(label string) *CommandError {
	return &CommandError{
		Code:    StatusInvalidArgument,
		Message: fmt.Sprintf(ErrMsgFieldRequiredFormat, label),
		Err:     ErrMissingField,
	}
}

func submissionFailed(err error) *CommandError {
	return &CommandError{
		Code:    StatusUnavailable,
		Message: ErrMsgOrderFailed,
		Err:     fmt.Errorf("%w: %w", ErrSubmissionFailed, err),
	}
}

// UserMessage returns the text to show the customer for err.
func UserMessage(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Message
	}
	return ErrMsgOrderFailed
}
