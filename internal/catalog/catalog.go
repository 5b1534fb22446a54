// Package catalog is the static train schedule and its search filter.
package catalog

import (
	"strings"

	"github.com/AchintyaNigam/my-rail/internal/models"
)

var trains = []models.Train{
	{ID: 1, Name: "Chennai Express", Departure: "Mumbai", Destination: "Chennai", Time: "06:15", Duration: "22h 30m", Price: "₹50"},
	{ID: 2, Name: "Coromandel Express", Departure: "Kolkata", Destination: "Chennai", Time: "14:50", Duration: "26h 40m", Price: "₹65"},
	{ID: 3, Name: "Rajdhani Express", Departure: "Delhi", Destination: "Mumbai", Time: "16:25", Duration: "15h 50m", Price: "₹120"},
	{ID: 4, Name: "Shatabdi Express", Departure: "Delhi", Destination: "Bhopal", Time: "06:00", Duration: "8h 15m", Price: "₹90"},
	{ID: 5, Name: "August Kranti Rajdhani", Departure: "Mumbai", Destination: "Delhi", Time: "17:10", Duration: "16h 5m", Price: "₹115"},
	{ID: 6, Name: "Duronto Express", Departure: "Kolkata", Destination: "Delhi", Time: "12:40", Duration: "17h 20m", Price: "₹100"},
	{ID: 7, Name: "Deccan Queen", Departure: "Pune", Destination: "Mumbai", Time: "07:15", Duration: "3h 10m", Price: "₹30"},
	{ID: 8, Name: "Karnataka Express", Departure: "Bengaluru", Destination: "Delhi", Time: "19:20", Duration: "39h 30m", Price: "₹140"},
	{ID: 9, Name: "Howrah Mail", Departure: "Mumbai", Destination: "Kolkata", Time: "21:00", Duration: "33h 45m", Price: "₹95"},
	{ID: 10, Name: "Vande Bharat Express", Departure: "Delhi", Destination: "Varanasi", Time: "06:00", Duration: "8h", Price: "₹110"},
	{ID: 11, Name: "Brindavan Express", Departure: "Bengaluru", Destination: "Hyderabad", Time: "07:50", Duration: "11h 20m", Price: "₹55"},
	{ID: 12, Name: "Gitanjali Express", Departure: "Kolkata", Destination: "Mumbai", Time: "13:50", Duration: "30h 15m", Price: "₹85"},
}

var stations = []string{
	"Bengaluru", "Bhopal", "Chennai", "Delhi", "Hyderabad",
	"Kolkata", "Mumbai", "Pune", "Varanasi",
}

// Trains returns a copy of the whole schedule.
func Trains() []models.Train {
	return append([]models.Train(nil), trains...)
}

func Stations() []string {
	return append([]string(nil), stations...)
}

func FindByID(id int) (models.Train, bool) {
	for _, t := range trains {
		if t.ID == id {
			return t, true
		}
	}
	return models.Train{}, false
}

// Filter is the schedule page's search state. Date is carried for display only
// and does not narrow the result.
type Filter struct {
	Query       string `query:"q"`
	Date        string `query:"date"`
	Departure   string `query:"departure"`
	Destination string `query:"destination"`
}

func (f Filter) Match(t models.Train) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Departure), q) &&
			!strings.Contains(strings.ToLower(t.Destination), q) {
			return false
		}
	}
	if f.Departure != "" && t.Departure != f.Departure {
		return false
	}
	if f.Destination != "" && t.Destination != f.Destination {
		return false
	}
	return true
}

// Search applies f to the schedule, keeping catalog order.
func Search(f Filter) []models.Train {
	out := make([]models.Train, 0, len(trains))
	for _, t := range trains {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
