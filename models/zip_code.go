package models

// ZipCode is a reference row mapping a zip to its centroid, loaded by the
// seeder and queried by the radius search.
type ZipCode struct {
	Zip       string  `gorm:"type:varchar(10);primaryKey" json:"zip"`
	City      string  `gorm:"type:varchar(100)" json:"city"`
	State     string  `gorm:"type:varchar(2)" json:"state"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}
