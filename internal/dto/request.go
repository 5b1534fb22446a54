package dto

import "github.com/AchintyaNigam/my-rail/internal/models"

type CreateBookingRequest struct {
	TrainData string `json:"train_data"`
}

type SelectCoachRequest struct {
	Coach string `json:"coach" validate:"required"`
}

type SetSeatsRequest struct {
	Seats int `json:"seats"`
}

type EditPassengerRequest struct {
	Field string `json:"field" validate:"required,oneof=name age gender"`
	Value string `json:"value"`
}

type PaymentRequest struct {
	Method     string `json:"method" validate:"omitempty,oneof=credit_card upi"`
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
	UPIID      string `json:"upi_id"`
}

func (r PaymentRequest) Instrument() models.PaymentInstrument {
	return models.PaymentInstrument{
		Method:     models.PaymentMethod(r.Method),
		CardNumber: r.CardNumber,
		CardHolder: r.CardHolder,
		ExpiryDate: r.ExpiryDate,
		CVV:        r.CVV,
		UPIID:      r.UPIID,
	}
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type SignupRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}
