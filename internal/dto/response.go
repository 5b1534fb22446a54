package dto

import (
	"time"

	"github.com/AchintyaNigam/my-rail/internal/fare"
	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/records"
	"github.com/AchintyaNigam/my-rail/internal/service"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type BookNowResponse struct {
	Train     models.Train `json:"train"`
	TrainData string       `json:"train_data"`
	Query     string       `json:"query"`
}

type SessionResponse struct {
	ID               string                 `json:"id"`
	State            flow.State             `json:"state"`
	Train            models.Train           `json:"train"`
	Form             models.BookingForm     `json:"form"`
	PriceSummary     fare.Breakdown         `json:"price_summary"`
	Summary          *models.BookingSummary `json:"summary,omitempty"`
	PaymentQuery     string                 `json:"payment_query,omitempty"`
	Reason           string                 `json:"reason,omitempty"`
	ConfirmationCode string                 `json:"confirmation_code,omitempty"`
	TicketID         string                 `json:"ticket_id,omitempty"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type PaymentPageResponse struct {
	Booking models.BookingSummary `json:"booking"`
}

type ReceiptResponse struct {
	Message          string                `json:"message"`
	TicketID         string                `json:"ticket_id"`
	RecordID         string                `json:"record_id"`
	ConfirmationCode string                `json:"confirmation_code"`
	Booking          models.BookingSummary `json:"booking"`
}

type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func ToSessionResponse(s *flow.Session, price fare.Breakdown) SessionResponse {
	resp := SessionResponse{
		ID:               s.ID,
		State:            s.State,
		Train:            s.Train,
		Form:             s.Form,
		PriceSummary:     price,
		Summary:          s.Summary,
		Reason:           s.Reason,
		ConfirmationCode: s.ConfirmationCode,
		TicketID:         s.TicketID,
		UpdatedAt:        s.UpdatedAt,
	}
	if s.Summary != nil && s.State == flow.StateSubmitted {
		resp.PaymentQuery = flow.EncodeSummary(*s.Summary).Encode()
	}
	return resp
}

func ToReceiptResponse(r *service.Receipt) ReceiptResponse {
	return ReceiptResponse{
		Message:          "Payment successful",
		TicketID:         r.TicketID,
		RecordID:         r.RecordID,
		ConfirmationCode: r.ConfirmationCode,
		Booking:          r.Summary,
	}
}

func ToUserResponse(u *records.UserRecord) UserResponse {
	return UserResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Phone: u.Phone}
}
