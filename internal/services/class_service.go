package services

import (
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/services/dto"

	"gorm.io/gorm"
)

type ClassService interface {
	CreateClass(db *gorm.DB, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetClass(db *gorm.DB, id string) (*dto.ClassResponse, error)
}

type ClassServiceImpl struct {
	classRepo repositories.ClassRepository
}

func NewClassService(classRepo repositories.ClassRepository) ClassService {
	return &ClassServiceImpl{classRepo: classRepo}
}

func (s *ClassServiceImpl) CreateClass(db *gorm.DB, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	class := &models.Class{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.classRepo.Create(db, class); err != nil {
		return nil, handleRepoError(err)
	}
	return buildClassResponse(class), nil
}

func (s *ClassServiceImpl) GetClass(db *gorm.DB, id string) (*dto.ClassResponse, error) {
	class, err := s.classRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildClassResponse(class), nil
}

func buildClassResponse(class *models.Class) *dto.ClassResponse {
	ids := make([]string, 0, len(class.Trainers))
	for _, t := range class.Trainers {
		ids = append(ids, t.TrainerID)
	}
	return &dto.ClassResponse{
		ID:          class.ID,
		Title:       class.Title,
		Description: class.Description,
		Image:       class.Image,
		Booked:      class.Booked,
		TrainerIDs:  ids,
		CreatedAt:   class.CreatedAt,
	}
}
