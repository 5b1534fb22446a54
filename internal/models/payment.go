package models

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodUPI        PaymentMethod = "upi"
)

// PaymentInstrument is checked locally and then dropped; it is never stored or
// sent to the record service.
type PaymentInstrument struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"card_number"`
	CardHolder string        `json:"card_holder"`
	ExpiryDate string        `json:"expiry_date"`
	CVV        string        `json:"cvv"`
	UPIID      string        `json:"upi_id"`
}
