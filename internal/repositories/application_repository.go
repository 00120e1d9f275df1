package repositories

import (
	"errors"

	"fitforge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	// ErrPendingApplicationExists is returned when the one-pending-per-user
	// index rejects an insert.
	ErrPendingApplicationExists = errors.New("pending application already exists")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	ExistsWithStatus(db *gorm.DB, userID string, status models.ApplicationStatus) (bool, error)
	FindByIDAndUserForUpdate(db *gorm.DB, id, userID string) (*models.Application, error)
	Update(db *gorm.DB, app *models.Application) error
	ListPending(db *gorm.DB) ([]models.Application, error)
	FindLatestByUser(db *gorm.DB, userID string) (*models.Application, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Application, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrPendingApplicationExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) ExistsWithStatus(db *gorm.DB, userID string, status models.ApplicationStatus) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) FindByIDAndUserForUpdate(db *gorm.DB, id, userID string) (*models.Application, error) {
	var app models.Application
	err := forUpdate(db).Where("id = ? AND user_id = ?", id, userID).First(&app).Error
	if err != nil {
		return nil, notFound(err, ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, app *models.Application) error {
	return db.Model(app).Select("status", "feedback", "resolved_at", "trainer_id").Updates(app).Error
}

func (r *ApplicationRepositoryImpl) ListPending(db *gorm.DB) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("User").Preload("Trainer").
		Where("status = ?", models.ApplicationStatusPending).
		Order("apply_date ASC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindLatestByUser(db *gorm.DB, userID string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("User").Preload("Trainer").
		Where("user_id = ?", userID).
		Order("apply_date DESC").
		First(&app).Error
	if err != nil {
		return nil, notFound(err, ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("user_id = ?", userID).Order("apply_date DESC").Find(&apps).Error
	return apps, err
}
