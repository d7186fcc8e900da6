package repository

import (
	"gorm.io/gorm"

	"github.com/rideway/rideway/app/models"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new maintenance task repository instance
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new maintenance task in the database
func (r *taskRepository) Create(task *models.MaintenanceTask) error {
	return r.db.Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *taskRepository) GetByID(id uint) (*models.MaintenanceTask, error) {
	var task models.MaintenanceTask
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByUUID retrieves a task by its public UUID
func (r *taskRepository) GetByUUID(uuid string) (*models.MaintenanceTask, error) {
	var task models.MaintenanceTask
	err := r.db.Where("uuid = ?", uuid).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByMotorcycleID retrieves the tasks defined for a motorcycle
func (r *taskRepository) GetByMotorcycleID(motorcycleID uint, includeArchived bool) ([]models.MaintenanceTask, error) {
	var tasks []models.MaintenanceTask
	query := r.db.Where("motorcycle_id = ?", motorcycleID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// GetActive retrieves all non-archived tasks across all motorcycles,
// preloading the owning motorcycle for the scheduler's due scan. Tasks whose
// motorcycle has been soft-deleted are excluded; Preload alone would skip the
// deleted parent row and hand back a zero-value Motorcycle.
func (r *taskRepository) GetActive() ([]models.MaintenanceTask, error) {
	var tasks []models.MaintenanceTask
	err := r.db.Preload("Motorcycle").
		Joins("JOIN motorcycles ON motorcycles.id = maintenance_tasks.motorcycle_id AND motorcycles.deleted_at IS NULL").
		Where("maintenance_tasks.archived = ?", false).
		Find(&tasks).Error
	return tasks, err
}

// Update updates an existing task in the database
func (r *taskRepository) Update(task *models.MaintenanceTask) error {
	return r.db.Save(task).Error
}

// Archive retires a task without deleting it
func (r *taskRepository) Archive(id uint) error {
	return r.db.Model(&models.MaintenanceTask{}).Where("id = ?", id).Update("archived", true).Error
}

// Delete removes a task from the database
func (r *taskRepository) Delete(id uint) error {
	return r.db.Delete(&models.MaintenanceTask{}, id).Error
}

// Count returns the total number of tasks
func (r *taskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MaintenanceTask{}).Count(&count).Error
	return count, err
}
