package repositories

import (
	"errors"

	"fitforge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriberAlreadyExists = errors.New("subscriber already exists")

type SubscriberRepository interface {
	Create(db *gorm.DB, subscriber *models.Subscriber) error
}

type SubscriberRepositoryImpl struct{}

func NewSubscriberRepository() SubscriberRepository {
	return &SubscriberRepositoryImpl{}
}

func (r *SubscriberRepositoryImpl) Create(db *gorm.DB, subscriber *models.Subscriber) error {
	if err := db.Create(subscriber).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSubscriberAlreadyExists
		}
		return err
	}
	return nil
}
