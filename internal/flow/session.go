package flow

import (
	"strings"
	"time"

	"github.com/AchintyaNigam/my-rail/internal/fare"
	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/roster"
)

type State string

const (
	// StateAwaitingTrain is the schedule step; sessions only exist after it.
	StateAwaitingTrain State = "awaiting_train_selection"
	StateCollecting    State = "collecting_booking_details"
	StateSubmitted     State = "submitted"
	StatePaid          State = "paid"
)

// Session is the booking context threaded from the booking step to payment.
type Session struct {
	ID               string                 `json:"id"`
	State            State                  `json:"state"`
	Train            models.Train           `json:"train"`
	BasePrice        int                    `json:"base_price"`
	Form             models.BookingForm     `json:"form"`
	Summary          *models.BookingSummary `json:"summary,omitempty"`
	Reason           string                 `json:"reason,omitempty"`
	ConfirmationCode string                 `json:"confirmation_code,omitempty"`
	RecordID         string                 `json:"record_id,omitempty"`
	TicketID         string                 `json:"ticket_id,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// Controller applies booking-step transitions to sessions.
type Controller struct {
	coaches *fare.CoachTable
	now     func() time.Time
}

func NewController(coaches *fare.CoachTable) *Controller {
	return &Controller{coaches: coaches, now: time.Now}
}

func (c *Controller) Coaches() *fare.CoachTable {
	return c.coaches
}

// Start opens a booking session from a schedule payload. A missing or
// unreadable payload yields ErrTrainUnavailable and no session.
func (c *Controller) Start(id, trainPayload string) (*Session, error) {
	train, base, err := DecodeTrain(trainPayload)
	if err != nil {
		return nil, err
	}

	now := c.now()
	return &Session{
		ID:        id,
		State:     StateCollecting,
		Train:     train,
		BasePrice: base,
		Form:      roster.NewForm(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Controller) SelectCoach(s *Session, coachID string) error {
	if err := c.editable(s); err != nil {
		return err
	}
	if _, ok := c.coaches.Lookup(coachID); !ok {
		return ErrUnknownCoach
	}
	s.Form.CoachType = coachID
	s.UpdatedAt = c.now()
	return nil
}

func (c *Controller) SetSeats(s *Session, seats int) error {
	if err := c.editable(s); err != nil {
		return err
	}
	form, err := roster.SetSeats(s.Form, seats)
	if err != nil {
		return err
	}
	s.Form = form
	s.UpdatedAt = c.now()
	return nil
}

func (c *Controller) EditPassenger(s *Session, index int, field roster.Field, value string) error {
	if err := c.editable(s); err != nil {
		return err
	}
	form, err := roster.SetPassengerField(s.Form, index, field, value)
	if err != nil {
		return err
	}
	s.Form = form
	s.UpdatedAt = c.now()
	return nil
}

// Price recomputes the price summary from the session's current form.
func (c *Controller) Price(s *Session) fare.Breakdown {
	return fare.Summarize(s.BasePrice, c.coaches.Surcharge(s.Form.CoachType), s.Form.Seats)
}

// Proceed validates the form and, on success, freezes it into a summary.
// Coach is checked before passengers. A rejected session stays editable and
// keeps the reason.
func (c *Controller) Proceed(s *Session) (models.BookingSummary, error) {
	if err := c.editable(s); err != nil {
		return models.BookingSummary{}, err
	}

	if err := validateForm(s.Form); err != nil {
		s.Reason = err.Error()
		s.UpdatedAt = c.now()
		return models.BookingSummary{}, err
	}

	summary := models.BookingSummary{
		FullName:   joinNames(s.Form.Passengers),
		TrainName:  s.Train.Name,
		Price:      c.Price(s).Total,
		Coach:      s.Form.CoachType,
		Passengers: len(s.Form.Passengers),
	}
	s.Summary = &summary
	s.State = StateSubmitted
	s.Reason = ""
	s.UpdatedAt = c.now()
	return summary, nil
}

// BeginPayment returns the frozen summary of a session that may be paid.
func (c *Controller) BeginPayment(s *Session) (models.BookingSummary, error) {
	switch s.State {
	case StatePaid:
		return models.BookingSummary{}, ErrAlreadyPaid
	case StateSubmitted:
		return *s.Summary, nil
	default:
		return models.BookingSummary{}, ErrNotSubmitted
	}
}

func (c *Controller) MarkPaid(s *Session, recordID, ticketID, code string) {
	s.State = StatePaid
	s.RecordID = recordID
	s.TicketID = ticketID
	s.ConfirmationCode = code
	s.UpdatedAt = c.now()
}

func (c *Controller) editable(s *Session) error {
	if s.State != StateCollecting {
		return ErrSessionLocked
	}
	return nil
}

func validateForm(form models.BookingForm) error {
	if form.CoachType == "" {
		return ErrCoachRequired
	}
	for _, p := range form.Passengers {
		if !p.Complete() {
			return ErrIncompletePassengers
		}
	}
	return nil
}

func joinNames(ps []models.Passenger) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
