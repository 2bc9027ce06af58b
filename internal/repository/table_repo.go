package repository

import (
	"context"

	"github.com/opendining/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	FindByID(ctx context.Context, id uint) (*models.Table, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Table, error)
	FindAll(ctx context.Context) ([]models.Table, error)
	SetReservation(ctx context.Context, tx *gorm.DB, tableID uint, reservationID *uint) error
	GetDB() *gorm.DB
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *tableRepository) Create(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// FindByIDForUpdate acquires a row-level lock on the table within the given
// transaction, serializing concurrent seat attempts on the same table.
func (r *tableRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Table, error) {
	var table models.Table
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) FindAll(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).Order("table_name ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) SetReservation(ctx context.Context, tx *gorm.DB, tableID uint, reservationID *uint) error {
	return tx.WithContext(ctx).
		Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("reservation_id", reservationID).Error
}
