package services

import (
	"errors"
	"strings"

	"fitforge_backend/internal/appErrors"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/services/dto"
	"fitforge_backend/internal/workers"
)

// JobRunner receives side effects to run once a transaction has committed.
// *workers.Dispatcher and workers.Inline implement it.
type JobRunner interface {
	Submit(job workers.Job)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// handleRepoError turns repository sentinels into application errors.
func handleRepoError(err error) error {
	var appErr *appErrors.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrUserNotFound):
		return appErrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return appErrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrTrainerNotFound):
		return appErrors.ErrTrainerNotFound
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return appErrors.ErrApplicationNotFound
	case errors.Is(err, repositories.ErrPendingApplicationExists):
		return appErrors.ErrApplicationInProgress
	case errors.Is(err, repositories.ErrSlotNotFound):
		return appErrors.ErrSlotNotFound
	case errors.Is(err, repositories.ErrClassNotFound):
		return appErrors.ErrClassNotFound
	case errors.Is(err, repositories.ErrClassAlreadyExists):
		return appErrors.ErrClassAlreadyExists
	case errors.Is(err, repositories.ErrSubscriberAlreadyExists):
		return appErrors.ErrSubscriberAlreadyExists
	default:
		return appErrors.InternalError(err)
	}
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		PhotoURL:  user.PhotoURL,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if user.Trainer != nil {
		resp.Trainer = buildTrainerResponse(user.Trainer)
	}
	return resp
}

func buildTrainerResponse(t *models.TrainerProfile) *dto.TrainerResponse {
	return &dto.TrainerResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Email:           t.Email,
		Name:            t.Name,
		PhotoURL:        t.PhotoURL,
		Experience:      t.Experience,
		Skills:          nonNil(t.Skills),
		AvailableDays:   nonNil(t.AvailableDays),
		Biography:       t.Biography,
		InitialDuration: t.InitialDuration,
		ClassDuration:   t.ClassDuration,
	}
}

func buildApplicationResponse(app *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:         app.ID,
		UserID:     app.UserID,
		TrainerID:  app.TrainerID,
		Status:     string(app.Status),
		Feedback:   app.Feedback,
		ApplyDate:  app.ApplyDate,
		ResolvedAt: app.ResolvedAt,
	}
}

func buildApplicationDetail(app *models.Application) *dto.ApplicationDetailResponse {
	detail := &dto.ApplicationDetailResponse{ApplicationResponse: buildApplicationResponse(app)}
	if app.User != nil {
		detail.User = buildUserResponse(app.User)
	}
	if app.Trainer != nil {
		detail.Trainer = buildTrainerResponse(app.Trainer)
	}
	return detail
}

func buildPaymentResponse(p *models.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		TrainerID:     p.TrainerID,
		ClassID:       p.ClassID,
		SlotID:        p.SlotID,
		Email:         p.Email,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
	}
}

func buildSlotView(row repositories.SlotRow) dto.SlotView {
	return dto.SlotView{
		ID:            row.ID,
		TrainerID:     row.TrainerID,
		Name:          row.Name,
		SlotTime:      row.SlotTime,
		ClassID:       row.ClassID,
		SelectedClass: row.ClassTitle,
		BookedMembers: nonNil(row.BookedMembers),
		Position:      row.Position,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
