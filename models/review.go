package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_food_order" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FoodID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_food_order" json:"food_id"`
	Food       Food      `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_food_order" json:"order_id"`
	UserName   string    `json:"user_name"` // snapshot of the reviewer's name
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"not null" json:"comment"`
	IsApproved bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
