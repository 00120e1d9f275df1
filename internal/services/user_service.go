package services

import (
	"fitforge_backend/internal/appErrors"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/services/dto"

	"gorm.io/gorm"
)

type UserService interface {
	RegisterUser(db *gorm.DB, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	// GetUser returns the user together with their trainer profile, if any.
	GetUser(db *gorm.DB, email string) (*dto.UserResponse, error)
	Subscribe(db *gorm.DB, req *dto.SubscribeRequest) (*dto.SubscriberResponse, error)
}

type UserServiceImpl struct {
	userRepo       repositories.UserRepository
	subscriberRepo repositories.SubscriberRepository
}

func NewUserService(userRepo repositories.UserRepository, subscriberRepo repositories.SubscriberRepository) UserService {
	return &UserServiceImpl{
		userRepo:       userRepo,
		subscriberRepo: subscriberRepo,
	}
}

func (s *UserServiceImpl) RegisterUser(db *gorm.DB, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(db, email); err == nil {
		return nil, appErrors.ErrEmailAlreadyExists
	} else if !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.InternalError(err)
	}

	user := &models.User{
		Email:    email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.UserRoleMember,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, handleRepoError(err)
	}
	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindWithTrainer(db, normalizeEmail(email))
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) Subscribe(db *gorm.DB, req *dto.SubscribeRequest) (*dto.SubscriberResponse, error) {
	subscriber := &models.Subscriber{
		Name:  req.Name,
		Email: normalizeEmail(req.Email),
	}
	if err := s.subscriberRepo.Create(db, subscriber); err != nil {
		return nil, handleRepoError(err)
	}
	return &dto.SubscriberResponse{
		ID:        subscriber.ID,
		Name:      subscriber.Name,
		Email:     subscriber.Email,
		CreatedAt: subscriber.CreatedAt,
	}, nil
}
