package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rideway/rideway/app/models"
)

// motorcycleRepository implements the MotorcycleRepository interface
type motorcycleRepository struct {
	db *gorm.DB
}

// NewMotorcycleRepository creates a new motorcycle repository instance
func NewMotorcycleRepository(db *gorm.DB) MotorcycleRepository {
	return &motorcycleRepository{db: db}
}

// Create creates a new motorcycle in the database
func (r *motorcycleRepository) Create(motorcycle *models.Motorcycle) error {
	return r.db.Create(motorcycle).Error
}

// GetByID retrieves a motorcycle by its ID
func (r *motorcycleRepository) GetByID(id uint) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.First(&motorcycle, id).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

// GetByUUID retrieves a motorcycle by its public UUID
func (r *motorcycleRepository) GetByUUID(uuid string) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.Where("uuid = ?", uuid).First(&motorcycle).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

// GetByUserID retrieves a page of motorcycles owned by a user
func (r *motorcycleRepository) GetByUserID(userID uint, offset, limit int) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := r.db.Where("user_id = ?", userID).Offset(offset).Limit(limit).Order("created_at DESC").Find(&motorcycles).Error
	return motorcycles, err
}

// Update updates an existing motorcycle in the database
func (r *motorcycleRepository) Update(motorcycle *models.Motorcycle) error {
	return r.db.Save(motorcycle).Error
}

// Delete removes a motorcycle and archives its tasks in one transaction so
// the scheduler's due scan never picks up tasks of a deleted bike.
func (r *motorcycleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MaintenanceTask{}).
			Where("motorcycle_id = ?", id).
			Update("archived", true).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Motorcycle{}, id).Error
	})
}

// Count returns the total number of motorcycles
func (r *motorcycleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Motorcycle{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of motorcycles owned by a user
func (r *motorcycleRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Motorcycle{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// UpdateMileage records a new odometer reading: it appends a mileage log
// entry and updates the motorcycle's current mileage in one transaction.
// Decreasing readings are accepted as odometer corrections.
func (r *motorcycleRepository) UpdateMileage(id uint, mileage int, recordedAt time.Time, notes string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		entry := models.MileageLog{
			MotorcycleID: id,
			Mileage:      mileage,
			RecordedAt:   recordedAt,
			Notes:        notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Motorcycle{}).Where("id = ?", id).Update("current_mileage", mileage).Error
	})
}

// GetMileageHistory returns recent odometer readings, newest first
func (r *motorcycleRepository) GetMileageHistory(motorcycleID uint, limit int) ([]models.MileageLog, error) {
	var entries []models.MileageLog
	err := r.db.Where("motorcycle_id = ?", motorcycleID).Order("recorded_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
