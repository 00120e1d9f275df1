package models

import "time"

// MaxTrainersPerClass caps the distinct trainers a class can reference.
const MaxTrainersPerClass = 5

type Class struct {
	BaseModel
	Title       string `gorm:"uniqueIndex;not null" json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Booked      int    `gorm:"not null;default:0" json:"booked"`

	Trainers []ClassTrainer `gorm:"foreignKey:ClassID" json:"trainers,omitempty"`
}

// ClassTrainer is one entry of a class's trainer list.
type ClassTrainer struct {
	ClassID   string    `gorm:"type:varchar(36);primaryKey" json:"class_id"`
	TrainerID string    `gorm:"type:varchar(36);primaryKey;index" json:"trainer_id"`
	CreatedAt time.Time `json:"created_at"`
}
