package consumer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchintyaNigam/my-rail/internal/models"
)

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	upsertFn func(ctx context.Context, t *models.Ticket) error
}

func (m *mockTicketRepo) Upsert(ctx context.Context, t *models.Ticket) error {
	return m.upsertFn(ctx, t)
}
func (m *mockTicketRepo) FindByID(ctx context.Context, id string) (*models.Ticket, error) {
	return nil, errors.New("not used")
}

// --- Fake acknowledger ---

type ackRecorder struct {
	acked, nacked, requeued bool
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}
func (a *ackRecorder) Reject(tag uint64, requeue bool) error { return nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func delivery(body string) (amqp.Delivery, *ackRecorder) {
	ack := &ackRecorder{}
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body)}, ack
}

func TestHandleMessage_Upserts(t *testing.T) {
	var got *models.Ticket
	tc := NewTicketConsumer(&mockTicketRepo{
		upsertFn: func(ctx context.Context, t *models.Ticket) error { got = t; return nil },
	}, quietLogger())

	msg, ack := delivery(`{"id":"t1","record_id":"rec1","fullName":"Asha","train_name":"Chennai Express","price":100,"coach":"Sleeper","passengers":1}`)
	tc.handleMessage(msg)

	require.NotNil(t, got)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, 100, got.Price)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleMessage_BadJSONIsDropped(t *testing.T) {
	called := false
	tc := NewTicketConsumer(&mockTicketRepo{
		upsertFn: func(ctx context.Context, t *models.Ticket) error { called = true; return nil },
	}, quietLogger())

	for _, body := range []string{`{oops`, `{"train_name":"no id"}`} {
		msg, ack := delivery(body)
		tc.handleMessage(msg)

		assert.True(t, ack.nacked, body)
		assert.False(t, ack.requeued, body)
	}
	assert.False(t, called)
}

func TestHandleMessage_RepoErrorRequeues(t *testing.T) {
	tc := NewTicketConsumer(&mockTicketRepo{
		upsertFn: func(ctx context.Context, t *models.Ticket) error { return errors.New("db down") },
	}, quietLogger())

	msg, ack := delivery(`{"id":"t1"}`)
	tc.handleMessage(msg)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
	assert.False(t, ack.acked)
}

func TestStart_DrainsChannel(t *testing.T) {
	done := make(chan string, 2)
	tc := NewTicketConsumer(&mockTicketRepo{
		upsertFn: func(ctx context.Context, t *models.Ticket) error { done <- t.ID; return nil },
	}, quietLogger())

	msgs := make(chan amqp.Delivery, 2)
	m1, _ := delivery(`{"id":"a"}`)
	m2, _ := delivery(`{"id":"b"}`)
	msgs <- m1
	msgs <- m2
	close(msgs)

	tc.Start(msgs)

	for _, want := range []string{"a", "b"} {
		select {
		case got := <-done:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatal("consumer did not process message")
		}
	}
}
