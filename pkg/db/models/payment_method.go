package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a payment channel offered at checkout.
type PaymentMethod struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null;uniqueIndex"`
	AccountNumber *string   `gorm:"column:account_number"`
	AccountName   *string   `gorm:"column:account_name"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
