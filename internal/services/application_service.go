package services

import (
	"context"
	"fmt"
	"time"

	"fitforge_backend/internal/appErrors"
	"fitforge_backend/internal/email"
	"fitforge_backend/internal/events"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/services/dto"
	"fitforge_backend/internal/workers"

	"gorm.io/gorm"
)

// ApplicationService drives the trainer application lifecycle:
// pending -> accepted | rejected | cancelled, all terminal.
type ApplicationService interface {
	FileApplication(db *gorm.DB, userEmail string, req *dto.FileApplicationRequest) (*dto.ApplicationResponse, error)
	ResolveApplication(db *gorm.DB, applicationID string, req *dto.ResolveApplicationRequest) (*dto.ApplicationResponse, error)
	ListPending(db *gorm.DB) ([]*dto.ApplicationDetailResponse, error)
	GetApplicationDetail(db *gorm.DB, userEmail string) (*dto.ApplicationDetailResponse, error)
	GetApplicationStatus(db *gorm.DB, userEmail string) ([]dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	userRepo        repositories.UserRepository
	trainerRepo     repositories.TrainerRepository
	applicationRepo repositories.ApplicationRepository
	mailer          email.Provider
	publisher       events.Publisher
	jobs            JobRunner
	now             func() time.Time
}

func NewApplicationService(
	userRepo repositories.UserRepository,
	trainerRepo repositories.TrainerRepository,
	applicationRepo repositories.ApplicationRepository,
	mailer email.Provider,
	publisher events.Publisher,
	jobs JobRunner,
) ApplicationService {
	return &ApplicationServiceImpl{
		userRepo:        userRepo,
		trainerRepo:     trainerRepo,
		applicationRepo: applicationRepo,
		mailer:          mailer,
		publisher:       publisher,
		jobs:            jobs,
		now:             time.Now,
	}
}

// FileApplication creates the trainer profile and its pending application
// in one transaction.
func (s *ApplicationServiceImpl) FileApplication(db *gorm.DB, userEmail string, req *dto.FileApplicationRequest) (*dto.ApplicationResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, appErrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByEmailForUpdate(tx, normalizeEmail(userEmail))
	if err != nil {
		return nil, handleRepoError(err)
	}

	// Resolution rewrites the role, so an admin filing would lose admin access.
	if user.Role == models.UserRoleAdmin {
		return nil, appErrors.ErrForbidden
	}

	if user.Role == models.UserRoleTrainer {
		accepted, err := s.applicationRepo.ExistsWithStatus(tx, user.ID, models.ApplicationStatusAccepted)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		if accepted {
			return nil, appErrors.ErrAlreadyTrainer
		}
	}

	pending, err := s.applicationRepo.ExistsWithStatus(tx, user.ID, models.ApplicationStatusPending)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if pending {
		return nil, appErrors.ErrApplicationInProgress
	}

	// A profile left over from an accepted application means the user is
	// still a trainer in all but role.
	if _, err := s.trainerRepo.FindByUserID(tx, user.ID); err == nil {
		return nil, appErrors.ErrAlreadyTrainer
	} else if !appErrors.Is(err, repositories.ErrTrainerNotFound) {
		return nil, appErrors.InternalError(err)
	}

	name := req.Name
	if name == "" {
		name = user.Name
	}
	photo := req.PhotoURL
	if photo == "" {
		photo = user.PhotoURL
	}

	trainer := &models.TrainerProfile{
		UserID:          user.ID,
		Email:           user.Email,
		Name:            name,
		PhotoURL:        photo,
		Experience:      req.Experience,
		Skills:          req.Skills,
		AvailableDays:   req.AvailableDays,
		Biography:       req.Biography,
		InitialDuration: req.ClassDuration,
		ClassDuration:   req.ClassDuration,
	}
	if err := s.trainerRepo.Create(tx, trainer); err != nil {
		return nil, appErrors.InternalError(err)
	}

	app := &models.Application{
		UserID:    user.ID,
		TrainerID: &trainer.ID,
		Status:    models.ApplicationStatusPending,
		ApplyDate: s.now().UTC(),
	}
	if err := s.applicationRepo.Create(tx, app); err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.publish(events.ApplicationFiled, events.ApplicationFiledEvent{
		ApplicationID: app.ID,
		UserID:        user.ID,
		TrainerID:     trainer.ID,
		Email:         user.Email,
		ApplyDate:     app.ApplyDate,
	})

	resp := buildApplicationResponse(app)
	return &resp, nil
}

// ResolveApplication applies an admin decision to a pending application.
// Rejection and cancellation remove the trainer profile with its slots.
func (s *ApplicationServiceImpl) ResolveApplication(db *gorm.DB, applicationID string, req *dto.ResolveApplicationRequest) (*dto.ApplicationResponse, error) {
	decision := models.ApplicationStatus(req.Status)
	if !decision.IsDecision() {
		return nil, appErrors.ValidationError(map[string]string{"status": "Must be one of: accepted, rejected, cancelled"})
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, appErrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	app, err := s.applicationRepo.FindByIDAndUserForUpdate(tx, applicationID, req.UserID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if app.Status.IsTerminal() {
		return nil, appErrors.ErrApplicationAlreadyResolved
	}

	user, err := s.userRepo.FindByID(tx, app.UserID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	switch decision {
	case models.ApplicationStatusAccepted:
		if err := s.userRepo.UpdateRole(tx, user.ID, models.UserRoleTrainer); err != nil {
			return nil, appErrors.InternalError(err)
		}
	default:
		if app.TrainerID != nil {
			err := s.trainerRepo.Delete(tx, *app.TrainerID)
			if err != nil && !appErrors.Is(err, repositories.ErrTrainerNotFound) {
				return nil, appErrors.InternalError(err)
			}
			app.TrainerID = nil
		}
		if err := s.userRepo.UpdateRole(tx, user.ID, models.UserRoleMember); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}

	resolvedAt := s.now().UTC()
	app.Status = decision
	app.Feedback = req.Feedback
	app.ResolvedAt = &resolvedAt
	if err := s.applicationRepo.Update(tx, app); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.notifyApplicant(user, app)
	s.publish(events.ApplicationResolved, events.ApplicationResolvedEvent{
		ApplicationID: app.ID,
		UserID:        user.ID,
		Email:         user.Email,
		Status:        string(app.Status),
		Feedback:      app.Feedback,
		ResolvedAt:    resolvedAt,
	})

	resp := buildApplicationResponse(app)
	return &resp, nil
}

func (s *ApplicationServiceImpl) ListPending(db *gorm.DB) ([]*dto.ApplicationDetailResponse, error) {
	apps, err := s.applicationRepo.ListPending(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	result := make([]*dto.ApplicationDetailResponse, 0, len(apps))
	for i := range apps {
		result = append(result, buildApplicationDetail(&apps[i]))
	}
	return result, nil
}

func (s *ApplicationServiceImpl) GetApplicationDetail(db *gorm.DB, userEmail string) (*dto.ApplicationDetailResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(userEmail))
	if err != nil {
		return nil, handleRepoError(err)
	}

	app, err := s.applicationRepo.FindLatestByUser(db, user.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return buildApplicationDetail(app), nil
}

func (s *ApplicationServiceImpl) GetApplicationStatus(db *gorm.DB, userEmail string) ([]dto.ApplicationResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(userEmail))
	if err != nil {
		return nil, handleRepoError(err)
	}

	apps, err := s.applicationRepo.ListByUser(db, user.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		result = append(result, buildApplicationResponse(&apps[i]))
	}
	return result, nil
}

func (s *ApplicationServiceImpl) notifyApplicant(user *models.User, app *models.Application) {
	subject := "Your FitForge trainer application"
	templateName := email.TemplateApplicationRejected
	if app.Status == models.ApplicationStatusAccepted {
		templateName = email.TemplateApplicationAccepted
	}
	data := email.TemplateData{
		"Name":     user.Name,
		"Status":   string(app.Status),
		"Feedback": app.Feedback,
	}
	to := []string{user.Email}

	s.jobs.Submit(workers.Job{
		Name: fmt.Sprintf("mail:%s:%s", templateName, app.ID),
		Run: func(context.Context) error {
			return s.mailer.SendTemplate(to, subject, templateName, data)
		},
	})
}

func (s *ApplicationServiceImpl) publish(key string, payload any) {
	publishAfterCommit(s.jobs, s.publisher, key, payload)
}
