package models

type User struct {
	BaseModel
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Name     string   `json:"name"`
	PhotoURL string   `json:"photo_url"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	Trainer *TrainerProfile `gorm:"foreignKey:UserID" json:"trainer,omitempty"`
}

type Subscriber struct {
	BaseModel
	Name  string `json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}
