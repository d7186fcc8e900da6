package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rideway/rideway/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	GetSettings(userID uint) (*models.UserSettings, error)
	SaveSettings(settings *models.UserSettings) error
	Update(user *models.User) error
	Count() (int64, error)
}

// MotorcycleRepository defines the interface for motorcycle-related database operations
type MotorcycleRepository interface {
	Create(motorcycle *models.Motorcycle) error
	GetByID(id uint) (*models.Motorcycle, error)
	GetByUUID(uuid string) (*models.Motorcycle, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Motorcycle, error)
	Update(motorcycle *models.Motorcycle) error
	Delete(id uint) error
	Count() (int64, error)
	CountByUserID(userID uint) (int64, error)
	UpdateMileage(id uint, mileage int, recordedAt time.Time, notes string) error
	GetMileageHistory(motorcycleID uint, limit int) ([]models.MileageLog, error)
}

// TaskRepository defines the interface for maintenance-task database operations
type TaskRepository interface {
	Create(task *models.MaintenanceTask) error
	GetByID(id uint) (*models.MaintenanceTask, error)
	GetByUUID(uuid string) (*models.MaintenanceTask, error)
	GetByMotorcycleID(motorcycleID uint, includeArchived bool) ([]models.MaintenanceTask, error)
	GetActive() ([]models.MaintenanceTask, error)
	Update(task *models.MaintenanceTask) error
	Archive(id uint) error
	Delete(id uint) error
	Count() (int64, error)
}

// RecordRepository defines the interface for maintenance-record database operations
type RecordRepository interface {
	Create(record *models.MaintenanceRecord) error
	GetByID(id uint) (*models.MaintenanceRecord, error)
	GetByUUID(uuid string) (*models.MaintenanceRecord, error)
	GetByMotorcycleID(motorcycleID uint, offset, limit int) ([]models.MaintenanceRecord, error)
	GetByUserID(userID uint) ([]models.MaintenanceRecord, error)
	GetLatestForTask(taskID uint) (*models.MaintenanceRecord, error)
	GetLatestForMotorcycle(motorcycleID uint) (*models.MaintenanceRecord, error)
	Update(record *models.MaintenanceRecord) error
	Delete(id uint) error
	Count() (int64, error)
	TotalCostSince(userID uint, since time.Time) (float64, error)
}

// NotificationRepository defines the interface for notification database operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByUserID(userID uint, unreadOnly bool, offset, limit int) ([]models.Notification, error)
	MarkAsRead(id uint, userID uint) error
	CountUnread(userID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Motorcycle   MotorcycleRepository
	Task         TaskRepository
	Record       RecordRepository
	Notification NotificationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Motorcycle:   NewMotorcycleRepository(db),
		Task:         NewTaskRepository(db),
		Record:       NewRecordRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
