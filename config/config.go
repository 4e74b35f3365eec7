package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"kitchen-api/models"
)

type Config struct {
	Port       string
	DBDSN      string
	JWTSecret  string
	CORSOrigin string
	Env        string
	Seed       bool
	Location   *time.Location
}

// Load reads configuration from the environment. godotenv is expected
// to have populated it from .env already (see main).
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getenv("PORT", "8080"),
		DBDSN:      os.Getenv("DB_DSN"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:3000"),
		Env:        getenv("APP_ENV", "development"),
		Seed:       os.Getenv("SEED") == "true",
		Location:   time.Local,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

// ConnectDatabase opens the MySQL connection and migrates the schema.
// The handle is returned to the caller and passed down explicitly so
// tests can substitute another dialect.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates/updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.ModifierGroup{},
		&models.ModifierOption{},
		&models.MenuItemModifierGroup{},
		&models.MenuEntry{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemModifier{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
