package database

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

// Seed loads reference data needed before the first request: the zip
// centroid table used by radius search, and (optionally) a bootstrap admin
// from ADMIN_EMAIL/ADMIN_PASSWORD.
func Seed(db *gorm.DB) error {
	if err := seedZipCodes(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedZipCodes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ZipCode{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Starter set covering the regions we staff today. Production deploys
	// load the full USPS table through the same rows.
	zips := []models.ZipCode{
		{Zip: "77002", City: "Houston", State: "TX", Latitude: 29.7589, Longitude: -95.3677},
		{Zip: "77494", City: "Katy", State: "TX", Latitude: 29.7430, Longitude: -95.8010},
		{Zip: "77573", City: "League City", State: "TX", Latitude: 29.4977, Longitude: -95.0897},
		{Zip: "77627", City: "Nederland", State: "TX", Latitude: 29.9716, Longitude: -93.9925},
		{Zip: "78401", City: "Corpus Christi", State: "TX", Latitude: 27.7946, Longitude: -97.3984},
		{Zip: "70112", City: "New Orleans", State: "LA", Latitude: 29.9571, Longitude: -90.0768},
		{Zip: "70601", City: "Lake Charles", State: "LA", Latitude: 30.2266, Longitude: -93.2174},
		{Zip: "70805", City: "Baton Rouge", State: "LA", Latitude: 30.4877, Longitude: -91.1514},
		{Zip: "36602", City: "Mobile", State: "AL", Latitude: 30.6920, Longitude: -88.0432},
		{Zip: "39501", City: "Gulfport", State: "MS", Latitude: 30.3817, Longitude: -89.0814},
		{Zip: "73102", City: "Oklahoma City", State: "OK", Latitude: 35.4702, Longitude: -97.5191},
		{Zip: "74103", City: "Tulsa", State: "OK", Latitude: 36.1557, Longitude: -95.9929},
		{Zip: "79701", City: "Midland", State: "TX", Latitude: 31.9935, Longitude: -102.0779},
		{Zip: "79761", City: "Odessa", State: "TX", Latitude: 31.8541, Longitude: -102.3550},
		{Zip: "88240", City: "Hobbs", State: "NM", Latitude: 32.7110, Longitude: -103.1604},
		{Zip: "58801", City: "Williston", State: "ND", Latitude: 48.1631, Longitude: -103.6330},
		{Zip: "82601", City: "Casper", State: "WY", Latitude: 42.8501, Longitude: -106.3252},
		{Zip: "80202", City: "Denver", State: "CO", Latitude: 39.7491, Longitude: -104.9973},
		{Zip: "15222", City: "Pittsburgh", State: "PA", Latitude: 40.4445, Longitude: -80.0000},
		{Zip: "26101", City: "Parkersburg", State: "WV", Latitude: 39.2657, Longitude: -81.5503},
	}

	if err := db.Create(&zips).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded %d zip centroid rows", len(zips))
	return nil
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded bootstrap admin user: %s", email)
	return nil
}
