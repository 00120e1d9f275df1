package models

import "gorm.io/datatypes"

// TrainerProfile exists from the moment a user applies until the application
// is rejected or cancelled. ClassDuration is the remaining budget in minutes;
// it moves only through slot add/remove.
type TrainerProfile struct {
	BaseModel
	UserID          string                      `gorm:"uniqueIndex;not null" json:"user_id"`
	Email           string                      `gorm:"index;not null" json:"email"`
	Name            string                      `json:"name"`
	PhotoURL        string                      `json:"photo_url"`
	Experience      int                         `json:"experience"`
	Skills          datatypes.JSONSlice[string] `json:"skills"`
	AvailableDays   datatypes.JSONSlice[string] `json:"available_days"`
	Biography       string                      `json:"biography"`
	InitialDuration int                         `gorm:"not null" json:"initial_duration"`
	ClassDuration   int                         `gorm:"not null" json:"class_duration"`

	Slots []Slot `gorm:"foreignKey:TrainerID" json:"slots,omitempty"`
}

type Slot struct {
	BaseModel
	TrainerID     string                      `gorm:"index;not null" json:"trainer_id"`
	ClassID       string                      `gorm:"index;not null" json:"class_id"`
	Name          string                      `json:"name"`
	SlotTime      int                         `gorm:"not null" json:"slot_time"`
	BookedMembers datatypes.JSONSlice[string] `json:"booked_members"`
	Position      int                         `gorm:"not null;default:0" json:"position"`
}

// HasMember reports whether email already booked the slot.
func (s *Slot) HasMember(email string) bool {
	for _, m := range s.BookedMembers {
		if m == email {
			return true
		}
	}
	return false
}
