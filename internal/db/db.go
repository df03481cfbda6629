package db

import (
	"os"
	"time"

	"concallalpha/internal/logger"
	"concallalpha/internal/models"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=concallalpha port=5432 sslmode=disable"
	}

	// Managed Postgres can take a moment to accept connections on cold
	// starts, so retry with backoff instead of dying immediately.
	connect := func() error {
		var err error
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(connect, policy); err != nil {
		logger.L().Fatalw("failed to connect to database", "error", err)
	}
	logger.L().Info("database connection established")

	err := DB.AutoMigrate(
		&models.Company{},
		&models.ConcallAnalysis{},
		&models.GrowthOutlook{},
		&models.Comment{},
		&models.CommentLike{},
		&models.CommentReport{},
		&models.AdminUser{},
	)
	if err != nil {
		logger.L().Fatalw("failed to migrate database", "error", err)
	}
	logger.L().Info("database migration completed")

	seedCompanies()
	seedAdmin()
}

func seedCompanies() {
	var count int64
	DB.Model(&models.Company{}).Count(&count)
	if count > 0 {
		return
	}

	// Minimal starter universe; the scoring pipeline appends analyses
	// for these codes.
	companies := []models.Company{
		{Code: "TCS", Name: "Tata Consultancy Services", Sector: "IT Services"},
		{Code: "INFY", Name: "Infosys", Sector: "IT Services"},
		{Code: "HDFCBANK", Name: "HDFC Bank", Sector: "Banking"},
		{Code: "ICICIBANK", Name: "ICICI Bank", Sector: "Banking"},
		{Code: "SUNPHARMA", Name: "Sun Pharmaceutical", Sector: "Pharma"},
		{Code: "MARUTI", Name: "Maruti Suzuki", Sector: "Auto"},
	}
	for _, company := range companies {
		if err := DB.Create(&company).Error; err != nil {
			logger.L().Warnw("failed to seed company", "code", company.Code, "error", err)
		}
	}
	logger.L().Infow("seeded starter companies", "count", len(companies))
}

// seedAdmin creates the moderation account from ADMIN_EMAIL/ADMIN_PASSWORD
// when no admin exists yet. Skipped silently when the vars are unset.
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	DB.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.L().Errorw("failed to hash admin password", "error", err)
		return
	}
	admin := models.AdminUser{Email: email, Password: string(hash)}
	if err := DB.Create(&admin).Error; err != nil {
		logger.L().Errorw("failed to seed admin user", "error", err)
		return
	}
	logger.L().Infow("seeded admin user", "email", email)
}
