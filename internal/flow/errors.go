package flow

import "errors"

// Validation failures. Their messages are shown to the user as-is.
var (
	ErrCoachRequired           = errors.New("coach required")
	ErrIncompletePassengers    = errors.New("incomplete passenger details")
	ErrUnknownCoach            = errors.New("unknown coach type")
	ErrMissingBookingDetails   = errors.New("missing booking details")
	ErrMalformedBookingDetails = errors.New("malformed booking details")
	ErrCardDetailsRequired     = errors.New("please fill in all card details")
	ErrUPIRequired             = errors.New("please enter your UPI ID")
	ErrUnknownPaymentMethod    = errors.New("unknown payment method")
)

// State errors.
var (
	ErrTrainUnavailable = errors.New("train details unavailable")
	ErrSessionLocked    = errors.New("booking already submitted")
	ErrNotSubmitted     = errors.New("booking has not been submitted for payment")
	ErrAlreadyPaid      = errors.New("booking already paid")
)

// IsValidation reports whether err is a user-correctable input problem.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrCoachRequired, ErrIncompletePassengers, ErrUnknownCoach,
		ErrMissingBookingDetails, ErrMalformedBookingDetails,
		ErrCardDetailsRequired, ErrUPIRequired, ErrUnknownPaymentMethod,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
