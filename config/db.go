package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-lifecycle-backend/models"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveMySQLDSN prefers MYSQL_URL/DATABASE_URL, then the config file,
// then discrete DB_* variables.
func resolveMySQLDSN(cfg *DatabaseConfig) (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw == "" {
		raw = strings.TrimSpace(cfg.DSN)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// Migrate runs schema migrations for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Staff{},
		&models.Room{},
		&models.Booking{},
		&models.MaintenanceRequest{},
	)
}

// Connect opens the MySQL connection, configures the pool and applies
// migrations. The returned handle is injected into services explicitly;
// there is no package-level DB.
func Connect(cfg *DatabaseConfig) (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Seed ensures a default manager account and a starter room inventory
// exist. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	var staffCount int64
	if err := db.Model(&models.Staff{}).Count(&staffCount).Error; err != nil {
		return err
	}
	if staffCount == 0 {
		password := envOrDefault("SEED_MANAGER_PASSWORD", "manager123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default manager password: %w", err)
		}
		manager := models.Staff{
			FullName: "Hotel Manager",
			Username: "manager@hotel.local",
			Password: string(hash),
			Role:     models.RoleManager,
		}
		if err := db.Create(&manager).Error; err != nil {
			return fmt.Errorf("failed to create default manager: %w", err)
		}
		log.Println("Default manager seeded")
	}

	var roomCount int64
	if err := db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
		return err
	}
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Type: models.RoomTypeStandard, Status: models.RoomAvailable, Price: 100, MaxOccupancy: 2, Description: "Standard queen room"},
			{RoomNumber: "102", Type: models.RoomTypeStandard, Status: models.RoomAvailable, Price: 100, MaxOccupancy: 2, Description: "Standard twin room"},
			{RoomNumber: "201", Type: models.RoomTypeDeluxe, Status: models.RoomAvailable, Price: 180, MaxOccupancy: 3, Description: "Deluxe king room"},
			{RoomNumber: "301", Type: models.RoomTypeSuite, Status: models.RoomAvailable, Price: 320, MaxOccupancy: 4, Description: "Corner suite"},
			{RoomNumber: "401", Type: models.RoomTypePresidential, Status: models.RoomAvailable, Price: 900, MaxOccupancy: 6, Description: "Presidential suite"},
		}
		if err := db.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}
		log.Println("Starter rooms seeded")
	}

	return nil
}
