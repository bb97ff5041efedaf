package models

import "time"

type QuickLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	URL       string    `gorm:"type:varchar(1024);not null" json:"url"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedBy uint      `gorm:"not null;default:0" json:"created_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
