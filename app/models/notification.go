package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NOTIFICATION_MAINTENANCE_DUE = "maintenance_due"
	NOTIFICATION_SYSTEM          = "system"
)

// Notification is an in-app alert, e.g. a task having come due. Creation of
// due alerts is gated by the event throttle so the same task does not spam
// the user on every scheduler pass.
type Notification struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type        string         `gorm:"type:varchar(50)" json:"type" validate:"oneof=maintenance_due system"`
	Content     string         `gorm:"type:text" json:"content"`
	IsRead      bool           `gorm:"default:false" json:"is_read"`
	ReferenceID uint           `json:"reference_id"` // ID of the object the notification refers to
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
