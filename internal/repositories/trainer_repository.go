package repositories

import (
	"errors"

	"fitforge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type TrainerRepository interface {
	Create(db *gorm.DB, trainer *models.TrainerProfile) error
	FindByID(db *gorm.DB, id string) (*models.TrainerProfile, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.TrainerProfile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.TrainerProfile, error)
	// AdjustClassDuration adds delta (possibly negative) to the remaining budget.
	AdjustClassDuration(db *gorm.DB, id string, delta int) error
	// Delete removes the profile together with its slots and class references.
	Delete(db *gorm.DB, id string) error
}

type TrainerRepositoryImpl struct{}

func NewTrainerRepository() TrainerRepository {
	return &TrainerRepositoryImpl{}
}

func (r *TrainerRepositoryImpl) Create(db *gorm.DB, trainer *models.TrainerProfile) error {
	return db.Create(trainer).Error
}

func (r *TrainerRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.TrainerProfile, error) {
	var trainer models.TrainerProfile
	if err := db.First(&trainer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrTrainerNotFound)
	}
	return &trainer, nil
}

func (r *TrainerRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.TrainerProfile, error) {
	var trainer models.TrainerProfile
	if err := forUpdate(db).First(&trainer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrTrainerNotFound)
	}
	return &trainer, nil
}

func (r *TrainerRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.TrainerProfile, error) {
	var trainer models.TrainerProfile
	if err := db.Where("user_id = ?", userID).First(&trainer).Error; err != nil {
		return nil, notFound(err, ErrTrainerNotFound)
	}
	return &trainer, nil
}

func (r *TrainerRepositoryImpl) AdjustClassDuration(db *gorm.DB, id string, delta int) error {
	result := db.Model(&models.TrainerProfile{}).Where("id = ?", id).
		Update("class_duration", gorm.Expr("class_duration + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

func (r *TrainerRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if err := db.Where("trainer_id = ?", id).Delete(&models.Slot{}).Error; err != nil {
		return err
	}
	if err := db.Where("trainer_id = ?", id).Delete(&models.ClassTrainer{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.TrainerProfile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}
