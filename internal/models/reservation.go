package models

import "time"

type ReservationStatus string

const (
	StatusBooked    ReservationStatus = "booked"
	StatusSeated    ReservationStatus = "seated"
	StatusFinished  ReservationStatus = "finished"
	StatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Reservation keeps date and time as the caller-facing strings
// (YYYY-MM-DD and HH:MM); parsing happens only during validation.
type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	FirstName       string            `gorm:"not null" json:"first_name"`
	LastName        string            `gorm:"not null" json:"last_name"`
	MobileNumber    string            `gorm:"not null" json:"mobile_number"`
	ReservationDate string            `gorm:"type:varchar(10);not null" json:"reservation_date"`
	ReservationTime string            `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          int               `gorm:"not null" json:"people"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
