package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rideway/rideway/app/models"
)

// recordRepository implements the RecordRepository interface
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new maintenance record repository instance
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// Create creates a new maintenance record in the database
func (r *recordRepository) Create(record *models.MaintenanceRecord) error {
	return r.db.Create(record).Error
}

// GetByID retrieves a record by its ID
func (r *recordRepository) GetByID(id uint) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUUID retrieves a record by its public UUID
func (r *recordRepository) GetByUUID(uuid string) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	err := r.db.Where("uuid = ?", uuid).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByMotorcycleID retrieves a page of records for a motorcycle, newest first
func (r *recordRepository) GetByMotorcycleID(motorcycleID uint, offset, limit int) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	err := r.db.Where("motorcycle_id = ?", motorcycleID).Offset(offset).Limit(limit).Order("date DESC").Find(&records).Error
	return records, err
}

// GetByUserID retrieves the full service history across a user's fleet,
// newest first, for exports.
func (r *recordRepository) GetByUserID(userID uint) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	err := r.db.Joins("JOIN motorcycles ON motorcycles.id = maintenance_records.motorcycle_id").
		Where("motorcycles.user_id = ?", userID).
		Preload("Motorcycle").Preload("Task").
		Order("maintenance_records.date DESC").
		Find(&records).Error
	return records, err
}

// GetLatestForTask returns the most recent record completed against a task,
// or nil when none exists.
func (r *recordRepository) GetLatestForTask(taskID uint) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	err := r.db.Where("task_id = ?", taskID).Order("date DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetLatestForMotorcycle returns the most recent record for a motorcycle, or
// nil when none exists.
func (r *recordRepository) GetLatestForMotorcycle(motorcycleID uint) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	err := r.db.Where("motorcycle_id = ?", motorcycleID).Order("date DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Update updates an existing record in the database
func (r *recordRepository) Update(record *models.MaintenanceRecord) error {
	return r.db.Save(record).Error
}

// Delete removes a record from the database
func (r *recordRepository) Delete(id uint) error {
	return r.db.Delete(&models.MaintenanceRecord{}, id).Error
}

// Count returns the total number of records
func (r *recordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MaintenanceRecord{}).Count(&count).Error
	return count, err
}

// TotalCostSince sums the maintenance cost across a user's fleet since the
// given date. Records without a cost count as zero.
func (r *recordRepository) TotalCostSince(userID uint, since time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&models.MaintenanceRecord{}).
		Joins("JOIN motorcycles ON motorcycles.id = maintenance_records.motorcycle_id").
		Where("motorcycles.user_id = ? AND maintenance_records.date >= ?", userID, since).
		Select("COALESCE(SUM(maintenance_records.cost), 0)").
		Scan(&total).Error
	return total, err
}
