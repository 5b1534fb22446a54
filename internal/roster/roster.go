// Package roster keeps a booking form's passenger list in step with its seat count.
package roster

import (
	"errors"
	"strconv"
	"strings"

	"github.com/AchintyaNigam/my-rail/internal/models"
)

const (
	MinSeats = 1
	MaxSeats = 5
	maxAge   = 150
)

var (
	ErrInvalidSeatCount = errors.New("seat count must be between 1 and 5")
	ErrPassengerIndex   = errors.New("passenger index out of range")
	ErrUnknownField     = errors.New("unknown passenger field")
	ErrInvalidAge       = errors.New("age must be a whole number between 0 and 150")
	ErrInvalidGender    = errors.New("gender must be male, female or other")
)

type Field string

const (
	FieldName   Field = "name"
	FieldAge    Field = "age"
	FieldGender Field = "gender"
)

// NewForm returns the form a booking starts with: no coach, one blank passenger.
func NewForm() models.BookingForm {
	return models.BookingForm{
		Seats:      MinSeats,
		Passengers: blank(MinSeats),
	}
}

// SetSeats resizes the roster. Every resize starts over with blank passengers;
// nothing typed before the change is kept.
func SetSeats(form models.BookingForm, seats int) (models.BookingForm, error) {
	if seats < MinSeats || seats > MaxSeats {
		return form, ErrInvalidSeatCount
	}
	form.Seats = seats
	form.Passengers = blank(seats)
	return form, nil
}

// SetPassengerField replaces one field of one passenger. An index outside the
// roster is a caller bug and is reported as ErrPassengerIndex with the form
// left untouched.
func SetPassengerField(form models.BookingForm, index int, field Field, value string) (models.BookingForm, error) {
	if index < 0 || index >= len(form.Passengers) {
		return form, ErrPassengerIndex
	}

	p := form.Passengers[index]
	switch field {
	case FieldName:
		p.Name = value
	case FieldAge:
		if value != "" {
			if _, ok := ParseAge(value); !ok {
				return form, ErrInvalidAge
			}
		}
		p.Age = value
	case FieldGender:
		g := models.Gender(value)
		if !g.Valid() {
			return form, ErrInvalidGender
		}
		p.Gender = g
	default:
		return form, ErrUnknownField
	}

	passengers := make([]models.Passenger, len(form.Passengers))
	copy(passengers, form.Passengers)
	passengers[index] = p
	form.Passengers = passengers
	return form, nil
}

// ParseAge reports the numeric age, or false when the text is not a usable age.
func ParseAge(age string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil || n < 0 || n > maxAge {
		return 0, false
	}
	return n, true
}

func blank(n int) []models.Passenger {
	return make([]models.Passenger, n)
}
