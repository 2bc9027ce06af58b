package repository

import (
	"context"

	"github.com/opendining/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	ListByDate(ctx context.Context, date string, excludeStatus models.ReservationStatus) ([]models.Reservation, error)
	ListByPhoneDigits(ctx context.Context, digits string) ([]models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByIDForUpdate acquires a row-level lock on the reservation within the
// given transaction, so concurrent seat attempts for the same reservation
// serialize on it.
func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) ListByDate(ctx context.Context, date string, excludeStatus models.ReservationStatus) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).Where("reservation_date = ?", date)
	if excludeStatus != "" {
		q = q.Where("status <> ?", excludeStatus)
	}
	if err := q.Order("reservation_time ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByPhoneDigits matches the stored display format against a digits-only
// substring, e.g. "(555) 123-4567" against "5551234".
func (r *reservationRepository) ListByPhoneDigits(ctx context.Context, digits string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("translate(mobile_number, '() -', '') LIKE ?", "%"+digits+"%").
		Order("reservation_date ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
