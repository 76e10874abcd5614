package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code            string         `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPercent float64        `gorm:"not null" json:"discount_percent"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
	Active          bool           `gorm:"default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cp *Coupon) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return nil
}

// Valid reports whether the coupon may be applied at the given instant.
func (cp *Coupon) Valid(now time.Time) bool {
	if !cp.Active {
		return false
	}
	if cp.ExpiresAt != nil && !cp.ExpiresAt.After(now) {
		return false
	}
	return true
}
