// Package fare holds the price arithmetic of a booking: base fare parsing,
// coach surcharges and totals. Everything here is pure.
package fare

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidPrice = errors.New("invalid train price")

// currencyPrefixes are stripped, in order, from a catalog price before parsing.
var currencyPrefixes = []string{"₹", "Rs.", "Rs", "$"}

// ParseBasePrice turns a catalog price such as "₹50" into 50.
func ParseBasePrice(price string) (int, error) {
	s := strings.TrimSpace(price)
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidPrice
	}
	return n, nil
}

// ComputeTotal returns (base + surcharge) * seats.
func ComputeTotal(base, surcharge, seats int) int {
	return (base + surcharge) * seats
}

// Breakdown is the price summary shown next to the booking form.
type Breakdown struct {
	BaseFare  int `json:"base_fare"`
	CoachFare int `json:"coach_fare"`
	Total     int `json:"total"`
	Seats     int `json:"seats"`
	UnitBase  int `json:"unit_base"`
	UnitCoach int `json:"unit_coach"`
}

func Summarize(base, surcharge, seats int) Breakdown {
	return Breakdown{
		BaseFare:  base * seats,
		CoachFare: surcharge * seats,
		Total:     ComputeTotal(base, surcharge, seats),
		Seats:     seats,
		UnitBase:  base,
		UnitCoach: surcharge,
	}
}
