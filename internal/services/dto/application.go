package dto

import "time"

// FileApplicationRequest is the trainer data a member submits when applying.
type FileApplicationRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	PhotoURL      string   `json:"photo_url" validate:"omitempty,url"`
	Experience    int      `json:"experience" validate:"min=0,max=80"`
	Skills        []string `json:"skills" validate:"required,min=1,max=20,dive,required,max=50"`
	AvailableDays []string `json:"available_days" validate:"required,min=1,max=7,dive,required,max=20"`
	Biography     string   `json:"biography" validate:"omitempty,max=2000"`
	ClassDuration int      `json:"class_duration" validate:"required,gt=0,max=10080"` // minutes
}

type ResolveApplicationRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Status   string `json:"status" validate:"required,is-decision"`
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

type ApplicationResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	TrainerID  *string    `json:"trainer_id"`
	Status     string     `json:"status"`
	Feedback   string     `json:"feedback,omitempty"`
	ApplyDate  time.Time  `json:"apply_date"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// ApplicationDetailResponse joins an application with its user and trainer profile.
type ApplicationDetailResponse struct {
	ApplicationResponse
	User    *UserResponse    `json:"user,omitempty"`
	Trainer *TrainerResponse `json:"trainer,omitempty"`
}
