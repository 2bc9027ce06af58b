package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opendining/reservation-service/internal/models"
	"github.com/opendining/reservation-service/internal/repository"
	"github.com/opendining/reservation-service/internal/validation"
	"gorm.io/gorm"
)

type TableService interface {
	Create(ctx context.Context, table *models.Table) (*models.Table, error)
	List(ctx context.Context) ([]models.Table, error)
	Get(ctx context.Context, id uint) (*models.Table, error)
	Seat(ctx context.Context, tableID, reservationID uint) (*models.Table, error)
	Clear(ctx context.Context, tableID uint) (*models.Table, error)
}

type tableService struct {
	tableRepo       repository.TableRepository
	reservationRepo repository.ReservationRepository
	publisher       EventPublisher
}

func NewTableService(tableRepo repository.TableRepository, reservationRepo repository.ReservationRepository, publisher EventPublisher) TableService {
	return &tableService{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
	}
}

func (s *tableService) Create(ctx context.Context, table *models.Table) (*models.Table, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	table.ReservationID = nil
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	publishEvent(s.publisher, "table.created", table)

	return table, nil
}

func (s *tableService) List(ctx context.Context) ([]models.Table, error) {
	return s.tableRepo.FindAll(ctx)
}

func (s *tableService) Get(ctx context.Context, id uint) (*models.Table, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("table %d does not exist", id)
		}
		return nil, fmt.Errorf("find table: %w", err)
	}
	return table, nil
}

// Seat links a free table to a booked reservation and marks the reservation
// seated. Both writes run in one transaction; the reservation and table rows
// are locked before the rule checks, so concurrent seats of the same table
// (or of the same reservation onto different tables) serialize and the loser
// fails its check.
func (s *tableService) Seat(ctx context.Context, tableID, reservationID uint) (*models.Table, error) {
	if reservationID == 0 {
		return nil, missingField("reservation_id")
	}

	var result *models.Table
	err := s.tableRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation %d does not exist", reservationID)
			}
			return fmt.Errorf("find reservation: %w", err)
		}

		table, err := s.tableRepo.FindByIDForUpdate(ctx, tx, tableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("table %d does not exist", tableID)
			}
			return fmt.Errorf("find table: %w", err)
		}

		if err := seatChecks(reservation, table); err != nil {
			return err
		}

		if err := s.tableRepo.SetReservation(ctx, tx, table.ID, &reservation.ID); err != nil {
			return fmt.Errorf("seat table: %w", err)
		}
		if err := s.reservationRepo.UpdateStatus(ctx, tx, reservation.ID, models.StatusSeated); err != nil {
			return fmt.Errorf("mark reservation seated: %w", err)
		}

		table.ReservationID = &reservation.ID
		result = table
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, "table.seated", result)

	return result, nil
}

// Clear frees an occupied table and marks its reservation finished, in one
// transaction.
func (s *tableService) Clear(ctx context.Context, tableID uint) (*models.Table, error) {
	var result *models.Table
	err := s.tableRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		table, err := s.tableRepo.FindByIDForUpdate(ctx, tx, tableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("table %d does not exist", tableID)
			}
			return fmt.Errorf("find table: %w", err)
		}

		if err := clearChecks(table); err != nil {
			return err
		}

		if err := s.reservationRepo.UpdateStatus(ctx, tx, *table.ReservationID, models.StatusFinished); err != nil {
			return fmt.Errorf("mark reservation finished: %w", err)
		}
		if err := s.tableRepo.SetReservation(ctx, tx, table.ID, nil); err != nil {
			return fmt.Errorf("clear table: %w", err)
		}

		table.ReservationID = nil
		result = table
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, "table.cleared", result)

	return result, nil
}

func validateTable(t *models.Table) error {
	return validation.Run(
		checkTableRequiredFields(t),
		checkTableName(t),
		checkCapacity(t),
	)
}

func checkTableRequiredFields(t *models.Table) validation.Check {
	return func() error {
		if strings.TrimSpace(t.TableName) == "" {
			return missingField("table_name")
		}
		if t.Capacity == 0 {
			return missingField("capacity")
		}
		return nil
	}
}

func checkTableName(t *models.Table) validation.Check {
	return func() error {
		if len(t.TableName) < 2 {
			return invalid("table_name must be at least 2 characters")
		}
		return nil
	}
}

func checkCapacity(t *models.Table) validation.Check {
	return func() error {
		if t.Capacity <= 0 {
			return invalid("capacity must be a positive number")
		}
		return nil
	}
}

// seatChecks runs the capacity and occupancy rules; the caller holds the
// table row lock.
func seatChecks(reservation *models.Reservation, table *models.Table) error {
	return validation.Run(
		func() error {
			if reservation.People > table.Capacity {
				return conflict("table does not have sufficient capacity")
			}
			return nil
		},
		func() error {
			if table.Occupied() {
				return conflict("table is occupied")
			}
			return nil
		},
		func() error {
			if reservation.Status == models.StatusSeated {
				return conflict("reservation is already seated")
			}
			return nil
		},
	)
}

func clearChecks(table *models.Table) error {
	if !table.Occupied() {
		return conflict("table is not occupied")
	}
	return nil
}
