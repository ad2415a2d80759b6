package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndthang/storepos-api/internal/config"
	"github.com/ndthang/storepos-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Store and staff entities
		&entity.Store{},
		&entity.Staff{},

		// Sales entities
		&entity.Order{},
		&entity.OrderItem{},

		// Configuration entities
		&entity.TaxConfig{},
		&entity.PaymentMethodConfig{},
		&entity.PrintConfig{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the default store and, when configured through
// environment variables, an initial admin staff account assigned to it.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var store entity.Store
	if err := db.Where("name = ?", "Cửa hàng chính").First(&store).Error; err != nil {
		store = entity.Store{
			Name:    "Cửa hàng chính",
			Address: "Chưa cập nhật",
			Active:  true,
		}
		if err := db.Create(&store).Error; err != nil {
			return fmt.Errorf("failed to create default store: %w", err)
		}
	}

	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminUsername == "" || adminPassword == "" {
		return nil
	}

	var existing entity.Staff
	if err := db.Where("username = ?", adminUsername).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.Staff{
		Username: adminUsername,
		FullName: viper.GetString("ADMIN_NAME"),
		Password: string(hashed),
		Role:     "manager",
		Active:   true,
		Stores:   []entity.Store{store},
	}
	if admin.FullName == "" {
		admin.FullName = "Quản lý"
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Warning: failed to create admin staff: %v", err)
	}

	return nil
}
