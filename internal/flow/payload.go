package flow

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AchintyaNigam/my-rail/internal/fare"
	"github.com/AchintyaNigam/my-rail/internal/models"
)

// Query parameter names used between the schedule, booking and payment steps.
const (
	ParamTrainData  = "trainData"
	ParamTrainName  = "train_name"
	ParamPrice      = "price"
	ParamCoach      = "coach"
	ParamPassengers = "passengers"
	ParamFullName   = "fullName"
)

// EncodeTrain serializes a train for the booking step.
func EncodeTrain(t models.Train) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode train: %w", err)
	}
	return string(b), nil
}

// BookingQuery is the query string the schedule step hands to the booking step.
func BookingQuery(t models.Train) (url.Values, error) {
	payload, err := EncodeTrain(t)
	if err != nil {
		return nil, err
	}
	return url.Values{ParamTrainData: {payload}}, nil
}

// DecodeTrain parses a booking-step payload and its base fare. Anything short
// of a named train with a readable price is ErrTrainUnavailable.
func DecodeTrain(payload string) (models.Train, int, error) {
	if strings.TrimSpace(payload) == "" {
		return models.Train{}, 0, ErrTrainUnavailable
	}

	var t models.Train
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return models.Train{}, 0, fmt.Errorf("%w: %v", ErrTrainUnavailable, err)
	}
	if t.Name == "" {
		return models.Train{}, 0, fmt.Errorf("%w: train name missing", ErrTrainUnavailable)
	}

	base, err := fare.ParseBasePrice(t.Price)
	if err != nil {
		return models.Train{}, 0, fmt.Errorf("%w: %v", ErrTrainUnavailable, err)
	}
	return t, base, nil
}

// EncodeSummary serializes a summary into the payment step's query parameters.
func EncodeSummary(s models.BookingSummary) url.Values {
	return url.Values{
		ParamTrainName:  {s.TrainName},
		ParamPrice:      {strconv.Itoa(s.Price)},
		ParamCoach:      {s.Coach},
		ParamPassengers: {strconv.Itoa(s.Passengers)},
		ParamFullName:   {s.FullName},
	}
}

// DecodeSummary reads the payment step's query parameters. fullName,
// train_name, price and coach are required; a missing passengers count reads
// as zero. Present but non-numeric numbers are rejected rather than guessed.
func DecodeSummary(v url.Values) (models.BookingSummary, error) {
	s := models.BookingSummary{
		FullName:  v.Get(ParamFullName),
		TrainName: v.Get(ParamTrainName),
		Coach:     v.Get(ParamCoach),
	}
	price := v.Get(ParamPrice)

	if s.FullName == "" || s.TrainName == "" || price == "" || s.Coach == "" {
		return models.BookingSummary{}, ErrMissingBookingDetails
	}

	p, err := strconv.Atoi(strings.TrimSpace(price))
	if err != nil || p < 0 {
		return models.BookingSummary{}, fmt.Errorf("%w: price %q", ErrMalformedBookingDetails, price)
	}
	s.Price = p

	if raw := v.Get(ParamPassengers); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return models.BookingSummary{}, fmt.Errorf("%w: passengers %q", ErrMalformedBookingDetails, raw)
		}
		s.Passengers = n
	}

	return s, nil
}
