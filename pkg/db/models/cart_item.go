package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem holds a customer's cart line until checkout converts it into an
// order detail and empties the cart.
type CartItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	ProductID      uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	ProductPriceID uuid.UUID  `gorm:"column:product_price_id;type:uuid;not null"`
	ColorID        *uuid.UUID `gorm:"column:color_id;type:uuid"`
	Size           *string    `gorm:"column:size"`
	Qty            int        `gorm:"column:qty;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
