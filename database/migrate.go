package database

import (
	"errors"
	"fmt"
	"strings"

	"fitforge_backend/internal/config"
	"fitforge_backend/internal/logger"
	"fitforge_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig is shared by the Postgres connection and the SQLite test databases.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// Open connects to Postgres and applies the pool settings.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the schema of every model.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.TrainerProfile{},
		&models.Application{},
		&models.Class{},
		&models.ClassTrainer{},
		&models.Slot{},
		&models.Payment{},
		&models.Subscriber{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	logger.Info("database schema migrated")
	return nil
}

// SeedFirstAdmin promotes (or creates) the user with the given email to admin.
// An empty email is a no-op.
func SeedFirstAdmin(db *gorm.DB, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{Email: email, Name: "Administrator", Role: models.UserRoleAdmin}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create first admin: %w", err)
			}
			logger.Info("first admin created", "email", email)
			return nil
		case err != nil:
			return err
		}

		if user.Role == models.UserRoleAdmin {
			return nil
		}
		if err := tx.Model(&user).Update("role", models.UserRoleAdmin).Error; err != nil {
			return fmt.Errorf("failed to promote first admin: %w", err)
		}
		logger.Info("existing user promoted to admin", "email", email)
		return nil
	})
}
