package models

import "time"

// Contract statuses
const (
	ContractDraft      = "draft"
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

type Contract struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CustomerID     uint       `gorm:"not null;index" json:"customer_id"`
	Customer       Customer   `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ContractNumber string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"contract_number"`
	Description    string     `gorm:"type:varchar(255)" json:"description"`
	StartDate      time.Time  `gorm:"not null" json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Status         string     `gorm:"type:varchar(15);not null;default:'draft'" json:"status"`
	Value          float64    `gorm:"type:decimal(12,2);not null;default:0.00" json:"value"`
	CreatedBy      uint       `gorm:"not null;default:0" json:"created_by"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}
