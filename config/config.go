package config

import (
	"log"
	"os"
	"strconv"

	"quickbite/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "quickbite_super_secret_2024"))

// Pickup point used for delivery-fee calculation. Single-kitchen setup, so
// one fixed coordinate rather than per-restaurant lookup.
var (
	RestaurantLat = getEnvFloat("RESTAURANT_LAT", 15.3694)
	RestaurantLng = getEnvFloat("RESTAURANT_LNG", 44.1910)
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// Open connects to the given SQLite DSN and migrates the schema. Tests use
// this directly with an in-memory DSN.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

func InitDB() {
	var err error
	DB, err = Open(getEnv("DB_PATH", "quickbite.db"))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("✅ Database connected and migrated successfully")
}
