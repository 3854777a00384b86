package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a delivery destination with its current delivery fee.
type Location struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string     `gorm:"column:name;not null"`
	PriceCents int64      `gorm:"column:price_cents;not null;default:0"`
	ParentID   *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
