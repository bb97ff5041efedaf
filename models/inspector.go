package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inspector statuses
const (
	InspectorAvailable = "available"
	InspectorMobilized = "mobilized"
	InspectorInactive  = "inactive"
)

type Inspector struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	InspectorNumber string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"inspector_number"`
	FirstName       string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone           string     `gorm:"type:varchar(30)" json:"phone"`
	Zip             string     `gorm:"type:varchar(10);index" json:"zip"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	Status          string     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	ProjectName     *string    `gorm:"type:varchar(255)" json:"project_name,omitempty"`
	MobilizedAt     *time.Time `json:"mobilized_at,omitempty"`
	DemobilizedAt   *time.Time `json:"demobilized_at,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	UpdateStamp     string     `gorm:"type:varchar(36);not null" json:"update_stamp"`
	CreatedBy       uint       `gorm:"not null;default:0" json:"created_by"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`

	DrugTests []DrugTest          `gorm:"foreignKey:InspectorID" json:"drug_tests,omitempty"`
	Equipment []Equipment         `gorm:"foreignKey:InspectorID" json:"equipment,omitempty"`
	Events    []MobilizationEvent `gorm:"foreignKey:InspectorID" json:"events,omitempty"`
}

// BeforeSave rotates the concurrency stamp on every write.
func (i *Inspector) BeforeSave(tx *gorm.DB) error {
	i.UpdateStamp = uuid.NewString()
	return nil
}
