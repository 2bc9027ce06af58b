package dto

// ReservationRequest is the payload for both create and full edit.
type ReservationRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateTableRequest struct {
	TableName string `json:"table_name"`
	Capacity  int    `json:"capacity"`
}

type SeatTableRequest struct {
	ReservationID uint `json:"reservation_id"`
}
