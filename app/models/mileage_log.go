package models

import (
	"time"

	"gorm.io/gorm"
)

// MileageLog keeps the history of odometer readings. The latest entry feeds
// Motorcycle.CurrentMileage; earlier entries stay around for charting and for
// auditing odometer corrections.
type MileageLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	MotorcycleID uint           `gorm:"index" json:"motorcycle_id"`
	Motorcycle   Motorcycle     `gorm:"foreignKey:MotorcycleID" json:"motorcycle,omitempty"`
	Mileage      int            `gorm:"type:int;not null" json:"mileage"`
	RecordedAt   time.Time      `gorm:"type:datetime;not null;index" json:"recorded_at"`
	Notes        string         `gorm:"type:varchar(255)" json:"notes"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
