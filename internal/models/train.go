package models

// Train is one row of the schedule catalog. Price keeps its currency prefix, e.g. "₹50".
type Train struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
}

type CoachType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surcharge int    `json:"price"`
}
