package dto

import "time"

type TrainerResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	PhotoURL        string   `json:"photo_url,omitempty"`
	Experience      int      `json:"experience"`
	Skills          []string `json:"skills"`
	AvailableDays   []string `json:"available_days"`
	Biography       string   `json:"biography,omitempty"`
	InitialDuration int      `json:"initial_duration"`
	ClassDuration   int      `json:"class_duration"`
}

type AddSlotRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	SlotTime int    `json:"slot_time" validate:"required,gt=0"` // minutes
	ClassID  string `json:"class_id" validate:"required"`
}

// SlotView is a slot with its selected class resolved to the class title.
type SlotView struct {
	ID            string   `json:"id"`
	TrainerID     string   `json:"trainer_id"`
	Name          string   `json:"name"`
	SlotTime      int      `json:"slot_time"`
	ClassID       string   `json:"class_id"`
	SelectedClass string   `json:"selected_class"`
	BookedMembers []string `json:"booked_members"`
	Position      int      `json:"position"`
}

type BookSlotRequest struct {
	TrainerID     string  `json:"trainer_id" validate:"required"`
	SlotID        string  `json:"slot_id" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	TransactionID string  `json:"transaction_id" validate:"required,max=255"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	TrainerID     string    `json:"trainer_id"`
	ClassID       string    `json:"class_id"`
	SlotID        string    `json:"slot_id"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}
