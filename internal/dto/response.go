package dto

import (
	"time"

	"github.com/opendining/reservation-service/internal/models"
)

type ReservationResponse struct {
	ID              uint                     `json:"id"`
	FirstName       string                   `json:"first_name"`
	LastName        string                   `json:"last_name"`
	MobileNumber    string                   `json:"mobile_number"`
	ReservationDate string                   `json:"reservation_date"`
	ReservationTime string                   `json:"reservation_time"`
	People          int                      `json:"people"`
	Status          models.ReservationStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
}

type TableResponse struct {
	ID            uint   `json:"id"`
	TableName     string `json:"table_name"`
	Capacity      int    `json:"capacity"`
	ReservationID *uint  `json:"reservation_id"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		MobileNumber:    r.MobileNumber,
		ReservationDate: r.ReservationDate,
		ReservationTime: r.ReservationTime,
		People:          r.People,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
	}
}

func ToTableResponse(t *models.Table) TableResponse {
	return TableResponse{
		ID:            t.ID,
		TableName:     t.TableName,
		Capacity:      t.Capacity,
		ReservationID: t.ReservationID,
	}
}
