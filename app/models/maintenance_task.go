package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rideway/rideway/internal/pkg/maintenance"
)

// MaintenanceTask defines a recurring or one-off service item for a
// motorcycle, keyed to a mileage interval, a day interval, or both. Whether a
// task is due is always derived via the calculator from the current mileage
// and the latest record; NextDueOdometer/NextDueDate are stored hints that
// get recomputed after each completion or odometer update, never trusted as
// fresh on their own.
type MaintenanceTask struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UUID            string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	MotorcycleID    uint       `gorm:"index" json:"motorcycle_id"`
	Motorcycle      Motorcycle `gorm:"foreignKey:MotorcycleID" json:"motorcycle,omitempty"`
	Name            string     `gorm:"type:varchar(150)" json:"name" validate:"required,min=1,max=150"`
	Description     string     `gorm:"type:text" json:"description"`
	IntervalMiles   *int       `gorm:"type:int" json:"interval_miles"`
	IntervalDays    *int       `gorm:"type:int" json:"interval_days"`
	IntervalBase    string     `gorm:"type:varchar(20);default:'current'" json:"interval_base" validate:"oneof=current zero"`
	BaseOdometer    int        `gorm:"type:int;default:0" json:"base_odometer"`
	NextDueOdometer *int       `gorm:"type:int" json:"next_due_odometer"`
	NextDueDate     *time.Time `gorm:"type:datetime" json:"next_due_date"`
	Priority        string     `gorm:"type:varchar(20);default:'low'" json:"priority" validate:"oneof=low medium high"`
	IsRecurring     bool       `gorm:"default:true" json:"is_recurring"`
	Archived        bool       `gorm:"default:false;index" json:"archived"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	// tasks are archived rather than deleted when retired
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (t *MaintenanceTask) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return nil
}

func (t *MaintenanceTask) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// CalculatorInput maps the task onto the due calculator's input shape
func (t *MaintenanceTask) CalculatorInput() maintenance.TaskInput {
	return maintenance.TaskInput{
		IntervalMiles:   t.IntervalMiles,
		IntervalDays:    t.IntervalDays,
		IntervalBase:    t.IntervalBase,
		NextDueOdometer: t.NextDueOdometer,
		Priority:        t.Priority,
	}
}
