package consumer

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/repository"
)

// TicketConsumer copies booked tickets into the local ledger.
type TicketConsumer struct {
	repo repository.TicketRepository
	log  *logrus.Logger
}

func NewTicketConsumer(repo repository.TicketRepository, log *logrus.Logger) *TicketConsumer {
	return &TicketConsumer{repo: repo, log: log}
}

// Start listens for messages until msgs is closed.
func (tc *TicketConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			tc.handleMessage(msg)
		}
		tc.log.Info("[TicketConsumer] channel closed, stopping consumer")
	}()
}

func (tc *TicketConsumer) handleMessage(msg amqp.Delivery) {
	var ticket models.Ticket
	if err := json.Unmarshal(msg.Body, &ticket); err != nil || ticket.ID == "" {
		tc.log.WithError(err).Warn("[TicketConsumer] dropping unreadable message")
		msg.Nack(false, false)
		return
	}

	if err := tc.repo.Upsert(context.Background(), &ticket); err != nil {
		tc.log.WithError(err).WithField("ticket_id", ticket.ID).Error("[TicketConsumer] failed to upsert ticket")
		msg.Nack(false, true) // requeue
		return
	}

	tc.log.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"train":     ticket.TrainName,
	}).Info("[TicketConsumer] ticket recorded")
	msg.Ack(false)
}
