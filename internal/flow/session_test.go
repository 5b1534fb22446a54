package flow

import (
	"strings"
	"testing"
	"time"

	"github.com/AchintyaNigam/my-rail/internal/catalog"
	"github.com/AchintyaNigam/my-rail/internal/fare"
	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() *Controller {
	c := NewController(fare.NewCoachTable(fare.DefaultCoaches))
	c.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return c
}

func startSession(t *testing.T, c *Controller, trainID int) *Session {
	t.Helper()
	tr, ok := catalog.FindByID(trainID)
	require.True(t, ok)
	payload, err := EncodeTrain(tr)
	require.NoError(t, err)
	s, err := c.Start("sess-1", payload)
	require.NoError(t, err)
	return s
}

func fillPassengers(t *testing.T, c *Controller, s *Session, names ...string) {
	t.Helper()
	require.NoError(t, c.SetSeats(s, len(names)))
	for i, n := range names {
		require.NoError(t, c.EditPassenger(s, i, roster.FieldName, n))
		require.NoError(t, c.EditPassenger(s, i, roster.FieldAge, "30"))
		require.NoError(t, c.EditPassenger(s, i, roster.FieldGender, "female"))
	}
}

func TestStart_InitialState(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)

	assert.Equal(t, StateCollecting, s.State)
	assert.Equal(t, "Chennai Express", s.Train.Name)
	assert.Equal(t, 50, s.BasePrice)
	assert.Equal(t, 1, s.Form.Seats)
	assert.Len(t, s.Form.Passengers, 1)
	assert.Equal(t, "", s.Form.CoachType)
}

func TestStart_BlockedOnBadPayload(t *testing.T) {
	c := newController()

	for _, payload := range []string{
		"",
		"   ",
		"{not json",
		`{"id":1,"price":"₹50"}`,
		`{"id":1,"name":"X","price":"free"}`,
	} {
		s, err := c.Start("x", payload)
		assert.ErrorIs(t, err, ErrTrainUnavailable, payload)
		assert.Nil(t, s)
	}
}

func TestPrice_Scenario(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1) // ₹50

	require.NoError(t, c.SetSeats(s, 2))
	require.NoError(t, c.SelectCoach(s, "Sleeper"))
	assert.Equal(t, 200, c.Price(s).Total)

	fillPassengers(t, c, s, "A", "B")
	require.NoError(t, c.SetSeats(s, 3))

	assert.Equal(t, 300, c.Price(s).Total)
	require.Len(t, s.Form.Passengers, 3)
	for _, p := range s.Form.Passengers {
		assert.Equal(t, models.Passenger{}, p)
	}
}

func TestPrice_NoCoachStillPricesBaseFare(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)
	require.NoError(t, c.SetSeats(s, 4))

	b := c.Price(s)

	assert.Equal(t, 200, b.BaseFare)
	assert.Equal(t, 0, b.CoachFare)
	assert.Equal(t, 200, b.Total)
}

func TestSelectCoach_Unknown(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)

	assert.ErrorIs(t, c.SelectCoach(s, "First Class"), ErrUnknownCoach)
	assert.ErrorIs(t, c.SelectCoach(s, ""), ErrUnknownCoach)
	assert.Equal(t, "", s.Form.CoachType)
}

func TestProceed_CoachCheckedFirst(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)

	_, err := c.Proceed(s)

	assert.ErrorIs(t, err, ErrCoachRequired)
	assert.Equal(t, "coach required", s.Reason)
	assert.Equal(t, StateCollecting, s.State)
	assert.Nil(t, s.Summary)
}

func TestProceed_IncompletePassenger(t *testing.T) {
	cases := map[string]func(c *Controller, s *Session){
		"no name": func(c *Controller, s *Session) {
			_ = c.EditPassenger(s, 1, roster.FieldName, "")
		},
		"no age": func(c *Controller, s *Session) {
			_ = c.EditPassenger(s, 0, roster.FieldAge, "")
		},
		"no gender": func(c *Controller, s *Session) {
			_ = c.EditPassenger(s, 1, roster.FieldGender, "")
		},
	}

	for name, blankOut := range cases {
		t.Run(name, func(t *testing.T) {
			c := newController()
			s := startSession(t, c, 1)
			require.NoError(t, c.SelectCoach(s, "Sleeper"))
			fillPassengers(t, c, s, "A", "B")
			blankOut(c, s)

			_, err := c.Proceed(s)

			assert.ErrorIs(t, err, ErrIncompletePassengers)
			assert.Equal(t, "incomplete passenger details", s.Reason)
			assert.Equal(t, StateCollecting, s.State)
		})
	}
}

func TestProceed_Success(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)
	require.NoError(t, c.SelectCoach(s, "AC Third Class"))
	fillPassengers(t, c, s, "Asha Rao", "Vikram Rao", "Meera")

	summary, err := c.Proceed(s)

	require.NoError(t, err)
	assert.Equal(t, models.BookingSummary{
		FullName:   "Asha Rao, Vikram Rao, Meera",
		TrainName:  "Chennai Express",
		Price:      (50 + 75) * 3,
		Coach:      "AC Third Class",
		Passengers: 3,
	}, summary)
	assert.Equal(t, StateSubmitted, s.State)
	assert.Equal(t, &summary, s.Summary)
	assert.Empty(t, s.Reason)
}

func TestProceed_ClearsEarlierReason(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)
	_, err := c.Proceed(s)
	require.Error(t, err)

	require.NoError(t, c.SelectCoach(s, "Sleeper"))
	fillPassengers(t, c, s, "A")
	_, err = c.Proceed(s)

	require.NoError(t, err)
	assert.Empty(t, s.Reason)
}

func TestFullNameJoin(t *testing.T) {
	for n := 1; n <= 5; n++ {
		c := newController()
		s := startSession(t, c, 3)
		require.NoError(t, c.SelectCoach(s, "Sleeper"))
		names := []string{"P1", "P2", "P3", "P4", "P5"}[:n]
		fillPassengers(t, c, s, names...)

		summary, err := c.Proceed(s)

		require.NoError(t, err)
		assert.Equal(t, strings.Join(names, ", "), summary.FullName)
		assert.Equal(t, n, summary.Passengers)
	}
}

func TestSubmittedSessionIsLocked(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)
	require.NoError(t, c.SelectCoach(s, "Sleeper"))
	fillPassengers(t, c, s, "A")
	_, err := c.Proceed(s)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SelectCoach(s, "AC Third Class"), ErrSessionLocked)
	assert.ErrorIs(t, c.SetSeats(s, 2), ErrSessionLocked)
	assert.ErrorIs(t, c.EditPassenger(s, 0, roster.FieldName, "Z"), ErrSessionLocked)
	_, err = c.Proceed(s)
	assert.ErrorIs(t, err, ErrSessionLocked)
	assert.Equal(t, "A", s.Summary.FullName)
}

func TestBeginPayment_States(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)

	_, err := c.BeginPayment(s)
	assert.ErrorIs(t, err, ErrNotSubmitted)

	require.NoError(t, c.SelectCoach(s, "Sleeper"))
	fillPassengers(t, c, s, "A")
	want, err := c.Proceed(s)
	require.NoError(t, err)

	got, err := c.BeginPayment(s)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	c.MarkPaid(s, "rec-1", "tick-1", "ABCD1234")
	assert.Equal(t, StatePaid, s.State)
	assert.Equal(t, "ABCD1234", s.ConfirmationCode)

	_, err = c.BeginPayment(s)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestEditPassenger_OutOfRange(t *testing.T) {
	c := newController()
	s := startSession(t, c, 1)

	err := c.EditPassenger(s, 3, roster.FieldName, "X")

	assert.ErrorIs(t, err, roster.ErrPassengerIndex)
}
