package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	AddressLine1 string    `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string    `gorm:"type:varchar(255)" json:"address_line2"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	State        string    `gorm:"type:varchar(2)" json:"state"`
	Zip          string    `gorm:"type:varchar(10)" json:"zip"`
	Notes        string    `gorm:"type:text" json:"notes"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	UpdateStamp  string    `gorm:"type:varchar(36);not null" json:"update_stamp"`
	CreatedBy    uint      `gorm:"not null;default:0" json:"created_by"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	Contacts  []Contact  `gorm:"foreignKey:CustomerID" json:"contacts,omitempty"`
	Contracts []Contract `gorm:"foreignKey:CustomerID" json:"contracts,omitempty"`
}

func (cu *Customer) BeforeSave(tx *gorm.DB) error {
	cu.UpdateStamp = uuid.NewString()
	return nil
}
