package models

import "time"

// Ticket is the local ledger copy of a ticket accepted by the record service.
type Ticket struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RecordID   string    `gorm:"type:varchar(64);index" json:"record_id"`
	SessionID  string    `gorm:"type:varchar(36)" json:"session_id,omitempty"`
	FullName   string    `gorm:"not null" json:"fullName"`
	TrainName  string    `gorm:"not null" json:"train_name"`
	Price      int       `gorm:"not null" json:"price"`
	Coach      string    `gorm:"not null" json:"coach"`
	Passengers int       `gorm:"not null" json:"passengers"`
	BookedAt   time.Time `gorm:"not null" json:"booked_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
