package models

import "time"

// Drug test results
const (
	ResultPending  = "pending"
	ResultNegative = "negative"
	ResultPositive = "positive"
)

type DrugTest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InspectorID uint      `gorm:"not null;index" json:"inspector_id"`
	Inspector   Inspector `gorm:"foreignKey:InspectorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TestDate    time.Time `gorm:"not null" json:"test_date"`
	TestType    string    `gorm:"type:varchar(50);not null" json:"test_type"`
	Result      string    `gorm:"type:varchar(15);not null;default:'pending'" json:"result"`
	LabName     string    `gorm:"type:varchar(255)" json:"lab_name"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedBy   uint      `gorm:"not null;default:0" json:"created_by"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
