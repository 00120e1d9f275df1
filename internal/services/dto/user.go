package dto

import "time"

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	PhotoURL  string           `json:"photo_url,omitempty"`
	Role      string           `json:"role"`
	CreatedAt time.Time        `json:"created_at"`
	Trainer   *TrainerResponse `json:"trainer,omitempty"`
}

type SubscribeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type SubscriberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
