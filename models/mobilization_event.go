package models

import "time"

// Mobilization actions
const (
	ActionMobilize   = "mobilize"
	ActionDemobilize = "demobilize"
)

type MobilizationEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InspectorID   uint      `gorm:"not null;index" json:"inspector_id"`
	Inspector     Inspector `gorm:"foreignKey:InspectorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Action        string    `gorm:"type:varchar(15);not null" json:"action"`
	ProjectName   string    `gorm:"type:varchar(255)" json:"project_name"`
	EffectiveDate time.Time `gorm:"not null" json:"effective_date"`
	CreatedBy     uint      `gorm:"not null;default:0" json:"created_by"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
