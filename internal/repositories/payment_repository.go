package repositories

import (
	"fitforge_backend/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	ListByTrainer(db *gorm.DB, trainerID string) ([]models.Payment, error)
	ListByEmail(db *gorm.DB, email string) ([]models.Payment, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) ListByTrainer(db *gorm.DB, trainerID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Where("trainer_id = ?", trainerID).Order("paid_at DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) ListByEmail(db *gorm.DB, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Where("email = ?", email).Order("paid_at DESC").Find(&payments).Error
	return payments, err
}
