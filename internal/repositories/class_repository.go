package repositories

import (
	"errors"

	"fitforge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrClassNotFound      = errors.New("class not found")
	ErrClassAlreadyExists = errors.New("class already exists")
)

type ClassRepository interface {
	Create(db *gorm.DB, class *models.Class) error
	FindByID(db *gorm.DB, id string) (*models.Class, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Class, error)
	TrainerIDs(db *gorm.DB, classID string) ([]string, error)
	AddTrainer(db *gorm.DB, classID, trainerID string) error
	RemoveTrainer(db *gorm.DB, classID, trainerID string) error
	AdjustBooked(db *gorm.DB, classID string, delta int) error
}

type ClassRepositoryImpl struct{}

func NewClassRepository() ClassRepository {
	return &ClassRepositoryImpl{}
}

func (r *ClassRepositoryImpl) Create(db *gorm.DB, class *models.Class) error {
	if err := db.Create(class).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrClassAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ClassRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Class, error) {
	var class models.Class
	err := db.Preload("Trainers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&class, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrClassNotFound)
	}
	return &class, nil
}

func (r *ClassRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Class, error) {
	var class models.Class
	if err := forUpdate(db).First(&class, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrClassNotFound)
	}
	return &class, nil
}

func (r *ClassRepositoryImpl) TrainerIDs(db *gorm.DB, classID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.ClassTrainer{}).
		Where("class_id = ?", classID).
		Order("created_at ASC").
		Pluck("trainer_id", &ids).Error
	return ids, err
}

func (r *ClassRepositoryImpl) AddTrainer(db *gorm.DB, classID, trainerID string) error {
	return db.Create(&models.ClassTrainer{ClassID: classID, TrainerID: trainerID}).Error
}

func (r *ClassRepositoryImpl) RemoveTrainer(db *gorm.DB, classID, trainerID string) error {
	return db.Where("class_id = ? AND trainer_id = ?", classID, trainerID).
		Delete(&models.ClassTrainer{}).Error
}

func (r *ClassRepositoryImpl) AdjustBooked(db *gorm.DB, classID string, delta int) error {
	result := db.Model(&models.Class{}).Where("id = ?", classID).
		Update("booked", gorm.Expr("booked + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}
