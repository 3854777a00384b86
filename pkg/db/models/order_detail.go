package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderDetail is the snapshot of one purchased line. Catalog references and
// names are copied at purchase time so later catalog edits never change
// historical orders. Rows are immutable after creation.
type OrderDetail struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	ProductPriceID uuid.UUID  `gorm:"column:product_price_id;type:uuid;not null"`
	ProductName    string     `gorm:"column:product_name;not null"`
	CategoryID     *uuid.UUID `gorm:"column:category_id;type:uuid"`
	CategoryName   *string    `gorm:"column:category_name"`
	BrandID        *uuid.UUID `gorm:"column:brand_id;type:uuid"`
	BrandName      *string    `gorm:"column:brand_name"`
	ColorID        *uuid.UUID `gorm:"column:color_id;type:uuid"`
	ColorName      *string    `gorm:"column:color_name"`
	Size           *string    `gorm:"column:size"`
	UnitPriceCents int64      `gorm:"column:unit_price_cents;not null"`
	Qty            int        `gorm:"column:qty;not null"`
	DiscountCents  int64      `gorm:"column:discount_cents;not null;default:0"`
	TotalCents     int64      `gorm:"column:total_cents;not null"`
	CreatedBy      uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
