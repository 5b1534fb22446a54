package flow

import (
	"math/rand"

	"github.com/AchintyaNigam/my-rail/internal/models"
)

// ValidateInstrument checks the fields the chosen method needs. An empty method
// means card, the form's default.
func ValidateInstrument(in models.PaymentInstrument) error {
	switch in.Method {
	case models.MethodCreditCard, "":
		if in.CardNumber == "" || in.CardHolder == "" || in.ExpiryDate == "" || in.CVV == "" {
			return ErrCardDetailsRequired
		}
	case models.MethodUPI:
		if in.UPIID == "" {
			return ErrUPIRequired
		}
	default:
		return ErrUnknownPaymentMethod
	}
	return nil
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewConfirmationCode returns an 8 character reference for the success screen.
// It is not unique and is not stored anywhere that relies on it.
func NewConfirmationCode() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
