package models

import "time"

// Application links a user to the trainer profile they applied with.
// The partial unique index keeps at most one pending application per user.
type Application struct {
	BaseModel
	UserID     string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_pending_user,where:status = 'pending'" json:"user_id"`
	TrainerID  *string           `gorm:"type:varchar(36);index" json:"trainer_id"`
	Status     ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Feedback   string            `json:"feedback,omitempty"`
	ApplyDate  time.Time         `gorm:"not null" json:"apply_date"`
	ResolvedAt *time.Time        `json:"resolved_at,omitempty"`

	User    *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Trainer *TrainerProfile `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}
