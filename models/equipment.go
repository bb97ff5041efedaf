package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equipment statuses
const (
	EquipmentAvailable = "available"
	EquipmentAssigned  = "assigned"
	EquipmentRetired   = "retired"
)

type Equipment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SerialNumber string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"serial_number"`
	Description  string     `gorm:"type:varchar(255);not null" json:"description"`
	Category     string     `gorm:"type:varchar(100)" json:"category"`
	Status       string     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	InspectorID  *uint      `gorm:"index" json:"inspector_id,omitempty"`
	Inspector    *Inspector `gorm:"foreignKey:InspectorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"inspector,omitempty"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	Condition    string     `gorm:"type:varchar(100)" json:"condition"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	UpdateStamp  string     `gorm:"type:varchar(36);not null" json:"update_stamp"`
	CreatedBy    uint       `gorm:"not null;default:0" json:"created_by"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (e *Equipment) BeforeSave(tx *gorm.DB) error {
	e.UpdateStamp = uuid.NewString()
	return nil
}
