package models

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderUnset, GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Passenger struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender Gender `json:"gender"`
}

// Complete reports whether every field a ticket needs is filled in.
func (p Passenger) Complete() bool {
	return p.Name != "" && p.Age != "" && p.Gender != GenderUnset
}

type BookingForm struct {
	CoachType  string      `json:"coachType"`
	Seats      int         `json:"seats"`
	Passengers []Passenger `json:"passengers"`
}

// BookingSummary is what the payment step receives. It is built once, when the
// booking passes validation, and never modified afterwards.
type BookingSummary struct {
	FullName   string `json:"fullName"`
	TrainName  string `json:"train_name"`
	Price      int    `json:"price"`
	Coach      string `json:"coach"`
	Passengers int    `json:"passengers"`
}
