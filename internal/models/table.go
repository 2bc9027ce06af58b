package models

import "time"

// Table is a physical table; a non-nil ReservationID means it is occupied
// by that reservation.
type Table struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TableName     string    `gorm:"not null" json:"table_name"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	ReservationID *uint     `json:"reservation_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
}

func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
