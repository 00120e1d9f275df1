package models

import "time"

// Payment is written once per booking and never updated.
type Payment struct {
	BaseModel
	TrainerID     string    `gorm:"type:varchar(36);index;not null" json:"trainer_id"`
	ClassID       string    `gorm:"type:varchar(36);index;not null" json:"class_id"`
	SlotID        string    `gorm:"type:varchar(36);index;not null" json:"slot_id"`
	Email         string    `gorm:"index;not null" json:"email"`
	Price         float64   `gorm:"not null" json:"price"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `gorm:"not null" json:"paid_at"`
}
