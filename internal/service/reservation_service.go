package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opendining/reservation-service/internal/models"
	"github.com/opendining/reservation-service/internal/repository"
	"github.com/opendining/reservation-service/internal/validation"
	"gorm.io/gorm"
)

type ReservationService interface {
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	Update(ctx context.Context, id uint, fields *models.Reservation) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Reservation, error)
	List(ctx context.Context, date, mobileNumber string) ([]models.Reservation, error)
	Get(ctx context.Context, id uint) (*models.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	publisher EventPublisher
}

func NewReservationService(repo repository.ReservationRepository, publisher EventPublisher) ReservationService {
	return &reservationService{repo: repo, publisher: publisher}
}

func (s *reservationService) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := validateReservation(reservation); err != nil {
		return nil, err
	}

	if reservation.Status == "" {
		reservation.Status = models.StatusBooked
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	publishEvent(s.publisher, "reservation.created", reservation)

	return reservation, nil
}

// Update merges the supplied fields over the stored record and runs the
// full create chain against the result. Finished reservations are terminal
// and cannot be edited back to life.
func (s *reservationService) Update(ctx context.Context, id uint, fields *models.Reservation) (*models.Reservation, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation %d is not found", id)
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}

	if existing.Status == models.StatusFinished {
		return nil, conflict("a finished reservation cannot be updated")
	}

	merged := mergeReservation(existing, fields)
	if err := validateReservation(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	publishEvent(s.publisher, "reservation.updated", merged)

	return merged, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation %d is not found", id)
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}

	newStatus := models.ReservationStatus(status)
	if !newStatus.Valid() {
		return nil, invalid("status cannot be %s", status)
	}
	if reservation.Status == models.StatusFinished {
		return nil, conflict("a finished reservation cannot be updated")
	}

	if err := s.repo.UpdateStatus(ctx, s.repo.GetDB(), id, newStatus); err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	reservation.Status = newStatus

	publishEvent(s.publisher, "reservation.status_changed", reservation)

	return reservation, nil
}

func (s *reservationService) List(ctx context.Context, date, mobileNumber string) ([]models.Reservation, error) {
	if mobileNumber != "" {
		return s.repo.ListByPhoneDigits(ctx, validation.Digits(mobileNumber))
	}
	if date != "" {
		return s.repo.ListByDate(ctx, date, models.StatusFinished)
	}
	return nil, invalid("a date or mobile_number query is required")
}

func (s *reservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation %d is not found", id)
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return reservation, nil
}

// validateReservation is the create/edit rule chain; order matters, the
// first failure wins.
func validateReservation(r *models.Reservation) error {
	return validation.Run(
		checkRequiredFields(r),
		checkDate(r),
		checkNotTuesday(r),
		checkTimeFormat(r),
		checkServiceWindow(r),
		checkMobileNumber(r),
		checkPeople(r),
		checkNewStatus(r),
	)
}

func checkRequiredFields(r *models.Reservation) validation.Check {
	return func() error {
		fields := []struct {
			name  string
			value string
		}{
			{"first_name", r.FirstName},
			{"last_name", r.LastName},
			{"mobile_number", r.MobileNumber},
			{"reservation_date", r.ReservationDate},
			{"reservation_time", r.ReservationTime},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				return missingField(f.name)
			}
		}
		if r.People == 0 {
			return missingField("people")
		}
		return nil
	}
}

// checkDate enforces the YYYY-MM-DD format and rejects past dates. The
// comparison is date-only, so a same-day reservation passes regardless of
// the current time of day.
func checkDate(r *models.Reservation) validation.Check {
	return func() error {
		date, err := validation.ParseDate(r.ReservationDate)
		if err != nil || date.Year() < 2020 {
			return invalid("reservation_date must be a valid date in YYYY-MM-DD format")
		}
		if r.ReservationDate < time.Now().Format(validation.DateLayout) {
			return invalid("reservation_date must be a present or future date")
		}
		return nil
	}
}

func checkNotTuesday(r *models.Reservation) validation.Check {
	return func() error {
		date, err := validation.ParseDate(r.ReservationDate)
		if err != nil {
			return invalid("reservation_date must be a valid date in YYYY-MM-DD format")
		}
		if date.Weekday() == time.Tuesday {
			return invalid("the restaurant is closed on Tuesdays")
		}
		return nil
	}
}

// checkTimeFormat is the coarse gate: HH:MM within operating hours.
func checkTimeFormat(r *models.Reservation) validation.Check {
	return func() error {
		t, err := validation.ParseTime(r.ReservationTime)
		if err != nil || t.Hour() < 10 || t.Hour() > 21 {
			return invalid("reservation_time must be a time between 10:00 and 21:59")
		}
		return nil
	}
}

// checkServiceWindow narrows to the bookable window, boundaries inclusive.
func checkServiceWindow(r *models.Reservation) validation.Check {
	return func() error {
		t, err := validation.ParseTime(r.ReservationTime)
		if err != nil {
			return invalid("reservation_time must be a time between 10:00 and 21:59")
		}
		minutes := t.Hour()*60 + t.Minute()
		if minutes < 10*60+30 || minutes > 21*60+30 {
			return invalid("reservation_time must be between 10:30 and 21:30")
		}
		return nil
	}
}

func checkMobileNumber(r *models.Reservation) validation.Check {
	return func() error {
		if validation.Digits(r.MobileNumber) == "" {
			return invalid("mobile_number must be a phone number")
		}
		return nil
	}
}

func checkPeople(r *models.Reservation) validation.Check {
	return func() error {
		if r.People <= 0 {
			return invalid("people must be a positive number")
		}
		return nil
	}
}

// checkNewStatus keeps seated and finished out of create/edit; those values
// belong to the status transition and seating operations.
func checkNewStatus(r *models.Reservation) validation.Check {
	return func() error {
		if r.Status == models.StatusSeated || r.Status == models.StatusFinished {
			return invalid("status cannot be %s", r.Status)
		}
		return nil
	}
}

func mergeReservation(existing, fields *models.Reservation) *models.Reservation {
	merged := *existing
	if fields.FirstName != "" {
		merged.FirstName = fields.FirstName
	}
	if fields.LastName != "" {
		merged.LastName = fields.LastName
	}
	if fields.MobileNumber != "" {
		merged.MobileNumber = fields.MobileNumber
	}
	if fields.ReservationDate != "" {
		merged.ReservationDate = fields.ReservationDate
	}
	if fields.ReservationTime != "" {
		merged.ReservationTime = fields.ReservationTime
	}
	if fields.People != 0 {
		merged.People = fields.People
	}
	if fields.Status != "" {
		merged.Status = fields.Status
	}
	return &merged
}
