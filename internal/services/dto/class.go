package dto

import "time"

type CreateClassRequest struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type ClassResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Booked      int       `json:"booked"`
	TrainerIDs  []string  `json:"trainer_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
