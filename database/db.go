package database

import (
	"fmt"
	"os"

	"enrollment-gateway/logger"
	clientModel "enrollment-gateway/models/client"
	deliveryModel "enrollment-gateway/models/delivery"
	logModel "enrollment-gateway/models/log"
	paymentModel "enrollment-gateway/models/payment"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// Stage 1: core records
	stage1Models := []interface{}{
		&clientModel.Client{},
		&paymentModel.Payment{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: audit tables
	auditModels := []interface{}{
		&deliveryModel.Attempt{},
		&logModel.Log{},
	}

	for _, model := range auditModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance. The
// unique index on payments.payment_id comes from the model tag and is what
// the webhook idempotency guarantee rests on.
func createIndexes() error {
	// Client indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_clients_phone ON clients(phone)").Error; err != nil {
		return fmt.Errorf("failed to create client phone index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_clients_email ON clients(email)").Error; err != nil {
		return fmt.Errorf("failed to create client email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_clients_is_paid ON clients(is_paid)").Error; err != nil {
		return fmt.Errorf("failed to create client is_paid index: %w", err)
	}

	// Payment indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)").Error; err != nil {
		return fmt.Errorf("failed to create payment status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create payment created_at index: %w", err)
	}

	// Delivery attempt indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_attempts_created_at ON attempts(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create delivery attempt created_at index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
