package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Motorcycle is a user-registered bike. CurrentMileage is the latest odometer
// reading in kilometers; it is nullable because a bike can be registered
// before its first reading. Mileage is expected to increase but corrections
// are not rejected.
type Motorcycle struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	UserID         uint       `gorm:"index" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name           string     `gorm:"type:varchar(150)" json:"name" validate:"required,min=1,max=150"`
	Make           string     `gorm:"type:varchar(100)" json:"make" validate:"max=100"`
	Model          string     `gorm:"type:varchar(100)" json:"model" validate:"max=100"`
	Year           *int       `gorm:"type:int" json:"year"`
	VIN            string     `gorm:"type:varchar(30);default:null" json:"vin" validate:"max=30"`
	CurrentMileage *int       `gorm:"type:int" json:"current_mileage"`
	PurchaseDate   *time.Time `gorm:"type:date" json:"purchase_date"`
	PhotoURL       string     `gorm:"type:varchar(255);default:null" json:"photo_url"`
	Notes          string     `gorm:"type:text" json:"notes"`
	// relations
	Tasks     []MaintenanceTask   `gorm:"foreignKey:MotorcycleID" json:"tasks,omitempty"`
	Records   []MaintenanceRecord `gorm:"foreignKey:MotorcycleID" json:"records,omitempty"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (m *Motorcycle) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.New().String()
	}
	return nil
}
