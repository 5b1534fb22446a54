package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/AchintyaNigam/my-rail/internal/fare"
	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/records"
	"github.com/AchintyaNigam/my-rail/internal/repository"
	"github.com/AchintyaNigam/my-rail/internal/roster"
	"github.com/AchintyaNigam/my-rail/pkg/rabbitmq"
)

var (
	ErrSessionNotFound   = errors.New("booking session not found")
	ErrSessionBusy       = errors.New("booking session is busy, try again")
	ErrPaymentInProgress = errors.New("payment already in progress")
	ErrPaymentFailed     = errors.New("payment failed")
)

// TicketStore is the part of the record service a payment needs.
type TicketStore interface {
	CreateTicket(ctx context.Context, rec records.TicketRecord) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Receipt is what a successful payment returns to the success screen.
type Receipt struct {
	TicketID         string                `json:"ticket_id"`
	RecordID         string                `json:"record_id"`
	ConfirmationCode string                `json:"confirmation_code"`
	Summary          models.BookingSummary `json:"summary"`
}

type BookingService interface {
	Create(ctx context.Context, trainPayload string) (*flow.Session, error)
	Get(ctx context.Context, id string) (*flow.Session, error)
	SelectCoach(ctx context.Context, id, coach string) (*flow.Session, error)
	SetSeats(ctx context.Context, id string, seats int) (*flow.Session, error)
	EditPassenger(ctx context.Context, id string, index int, field roster.Field, value string) (*flow.Session, error)
	Proceed(ctx context.Context, id string) (*flow.Session, error)
	Pay(ctx context.Context, id string, in models.PaymentInstrument) (*Receipt, error)
	PayWithSummary(ctx context.Context, query url.Values, in models.PaymentInstrument) (*Receipt, error)
	PriceSummary(s *flow.Session) fare.Breakdown
	Coaches() []models.CoachType
}

type bookingService struct {
	ctrl      *flow.Controller
	sessions  repository.SessionRepository
	tickets   TicketStore
	publisher EventPublisher
	ledger    repository.TicketRepository
	log       *logrus.Logger
	inflight  singleflight.Group
	now       func() time.Time

	// an edit waits up to lockRetries*lockBackoff for an overlapping edit
	lockRetries int
	lockBackoff time.Duration
}

// NewBookingService wires the booking flow to its stores. publisher and ledger
// may be nil: a paid ticket is published when a publisher is set, written to
// the ledger directly when only a ledger is set, and otherwise only kept by the
// record service.
func NewBookingService(
	ctrl *flow.Controller,
	sessions repository.SessionRepository,
	tickets TicketStore,
	publisher EventPublisher,
	ledger repository.TicketRepository,
	log *logrus.Logger,
) BookingService {
	return &bookingService{
		ctrl:      ctrl,
		sessions:  sessions,
		tickets:   tickets,
		publisher: publisher,
		ledger:    ledger,
		log:       log,
		now:       time.Now,

		lockRetries: 10,
		lockBackoff: 25 * time.Millisecond,
	}
}

func (s *bookingService) Create(ctx context.Context, trainPayload string) (*flow.Session, error) {
	sess, err := s.ctrl.Start(uuid.NewString(), trainPayload)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.log.WithFields(logrus.Fields{"session_id": sess.ID, "train": sess.Train.Name}).Info("booking session started")
	return sess, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*flow.Session, error) {
	sess, err := s.sessions.FindByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

func (s *bookingService) SelectCoach(ctx context.Context, id, coach string) (*flow.Session, error) {
	return s.update(ctx, id, false, func(sess *flow.Session) error {
		return s.ctrl.SelectCoach(sess, coach)
	})
}

func (s *bookingService) SetSeats(ctx context.Context, id string, seats int) (*flow.Session, error) {
	return s.update(ctx, id, false, func(sess *flow.Session) error {
		return s.ctrl.SetSeats(sess, seats)
	})
}

func (s *bookingService) EditPassenger(ctx context.Context, id string, index int, field roster.Field, value string) (*flow.Session, error) {
	return s.update(ctx, id, false, func(sess *flow.Session) error {
		return s.ctrl.EditPassenger(sess, index, field, value)
	})
}

// Proceed stores the outcome either way: a rejected session keeps its reason.
func (s *bookingService) Proceed(ctx context.Context, id string) (*flow.Session, error) {
	return s.update(ctx, id, true, func(sess *flow.Session) error {
		_, err := s.ctrl.Proceed(sess)
		return err
	})
}

func (s *bookingService) Pay(ctx context.Context, id string, in models.PaymentInstrument) (*Receipt, error) {
	unlock, err := s.sessions.Lock(ctx, id)
	if errors.Is(err, repository.ErrSessionBusy) {
		return nil, ErrPaymentInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	defer unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.ctrl.BeginPayment(sess)
	if err != nil {
		return nil, err
	}
	if err := flow.ValidateInstrument(in); err != nil {
		return nil, err
	}

	receipt, err := s.settle(ctx, summary, sess.ID)
	if err != nil {
		return nil, err
	}

	s.ctrl.MarkPaid(sess, receipt.RecordID, receipt.TicketID, receipt.ConfirmationCode)
	if err := s.sessions.Save(ctx, sess); err != nil {
		// The ticket exists at this point; losing the session only loses the
		// paid marker.
		s.log.WithError(err).WithField("session_id", sess.ID).Error("failed to save paid session")
	}
	return receipt, nil
}

// PayWithSummary pays for a booking described entirely by query parameters.
// Identical submissions that arrive while one is outstanding share its result.
func (s *bookingService) PayWithSummary(ctx context.Context, query url.Values, in models.PaymentInstrument) (*Receipt, error) {
	summary, err := flow.DecodeSummary(query)
	if err != nil {
		return nil, err
	}
	if err := flow.ValidateInstrument(in); err != nil {
		return nil, err
	}

	key := flow.EncodeSummary(summary).Encode()
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		// shared by every waiting caller, so one disconnect must not cancel it
		return s.settle(context.WithoutCancel(ctx), summary, "")
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.WithField("train", summary.TrainName).Info("duplicate payment submission collapsed")
	}
	receipt := *v.(*Receipt)
	return &receipt, nil
}

func (s *bookingService) PriceSummary(sess *flow.Session) fare.Breakdown {
	return s.ctrl.Price(sess)
}

func (s *bookingService) Coaches() []models.CoachType {
	return s.ctrl.Coaches().All()
}

// update applies fn to a stored session under the session lock. When
// saveOnErr is set the session is stored even if fn fails.
func (s *bookingService) update(ctx context.Context, id string, saveOnErr bool, fn func(*flow.Session) error) (*flow.Session, error) {
	unlock, err := s.waitLock(ctx, id)
	if errors.Is(err, repository.ErrSessionBusy) {
		return nil, ErrSessionBusy
	}
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	defer unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fnErr := fn(sess)
	if fnErr != nil && !saveOnErr {
		return nil, fnErr
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, fnErr
}

// waitLock takes the session lock, retrying while another edit holds it. A
// payment holds the lock for the record service round trip, so edits still
// give up with ErrSessionBusy once the retries run out.
func (s *bookingService) waitLock(ctx context.Context, id string) (func(), error) {
	for attempt := 0; ; attempt++ {
		unlock, err := s.sessions.Lock(ctx, id)
		if !errors.Is(err, repository.ErrSessionBusy) || attempt >= s.lockRetries {
			return unlock, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.lockBackoff):
		}
	}
}

// settle records the ticket with the record service and announces it.
func (s *bookingService) settle(ctx context.Context, summary models.BookingSummary, sessionID string) (*Receipt, error) {
	recordID, err := s.tickets.CreateTicket(ctx, records.TicketRecord{
		FullName:   summary.FullName,
		TrainName:  summary.TrainName,
		Price:      strconv.Itoa(summary.Price),
		Coach:      summary.Coach,
		Passengers: summary.Passengers,
	})
	if err != nil {
		s.log.WithError(err).WithField("train", summary.TrainName).Error("record service rejected ticket")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	ticket := &models.Ticket{
		ID:         uuid.NewString(),
		RecordID:   recordID,
		SessionID:  sessionID,
		FullName:   summary.FullName,
		TrainName:  summary.TrainName,
		Price:      summary.Price,
		Coach:      summary.Coach,
		Passengers: summary.Passengers,
		BookedAt:   s.now().UTC(),
	}
	s.announce(ctx, ticket)

	s.log.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"record_id": recordID,
		"total":     summary.Price,
	}).Info("ticket booked")

	return &Receipt{
		TicketID:         ticket.ID,
		RecordID:         recordID,
		ConfirmationCode: flow.NewConfirmationCode(),
		Summary:          summary,
	}, nil
}

// announce never fails a payment; the record service already holds the ticket.
// The ledger is written directly when there is no publisher or publishing fails.
func (s *bookingService) announce(ctx context.Context, ticket *models.Ticket) {
	if s.publisher != nil {
		err := s.publisher.Publish(ctx, rabbitmq.RoutingTicketBooked, ticket)
		if err == nil {
			return
		}
		s.log.WithError(err).WithField("ticket_id", ticket.ID).Warn("failed to publish ticket.booked")
	}
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Upsert(ctx, ticket); err != nil {
		s.log.WithError(err).WithField("ticket_id", ticket.ID).Warn("failed to write ticket ledger")
	}
}
