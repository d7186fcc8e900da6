package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rideway/rideway/internal/pkg/maintenance"
)

// MaintenanceRecord is a completed service entry. TaskID is nullable because
// a record may be free-standing (a one-off repair not tied to any defined
// task). History is immutable once created except through an explicit edit.
type MaintenanceRecord struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UUID            string           `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	MotorcycleID    uint             `gorm:"index" json:"motorcycle_id"`
	Motorcycle      Motorcycle       `gorm:"foreignKey:MotorcycleID" json:"motorcycle,omitempty"`
	TaskID          *uint            `gorm:"index" json:"task_id"`
	Task            *MaintenanceTask `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Date            time.Time        `gorm:"type:datetime;not null;index" json:"date"`
	Mileage         *int             `gorm:"type:int" json:"mileage"`
	NextDueOdometer *int             `gorm:"type:int" json:"next_due_odometer"`
	NextDueDate     *time.Time       `gorm:"type:datetime" json:"next_due_date"`
	Cost            *float64         `gorm:"type:decimal(10,2)" json:"cost"`
	Notes           string           `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (r *MaintenanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return nil
}

// CalculatorInput maps the record onto the due calculator's input shape
func (r *MaintenanceRecord) CalculatorInput() *maintenance.RecordInput {
	if r == nil {
		return nil
	}
	return &maintenance.RecordInput{
		Date:            r.Date,
		Mileage:         r.Mileage,
		NextDueOdometer: r.NextDueOdometer,
	}
}
