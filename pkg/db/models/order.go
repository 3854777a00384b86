package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
)

// Order is the ledger row for one checkout. Amount is derived from the order
// details and must always equal the sum of their line totals.
type Order struct {
	ID                 uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Number             string            `gorm:"column:number;not null;uniqueIndex"`
	Status             enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	AmountCents        int64             `gorm:"column:amount_cents;not null;default:0"`
	CustomerID         uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	LocationID         uuid.UUID         `gorm:"column:location_id;type:uuid;not null"`
	LocationPriceCents int64             `gorm:"column:location_price_cents;not null;default:0"`
	PaymentMethodID    uuid.UUID         `gorm:"column:payment_method_id;type:uuid;not null"`
	PaymentAttachment  string            `gorm:"column:payment_attachment"`
	Note               *string           `gorm:"column:note"`
	StaffID            *uuid.UUID        `gorm:"column:staff_id;type:uuid"`
	CreatedBy          uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy          *uuid.UUID        `gorm:"column:updated_by;type:uuid"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Customer      *Customer      `gorm:"foreignKey:CustomerID"`
	Location      *Location      `gorm:"foreignKey:LocationID"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
	Staff         *Staff         `gorm:"foreignKey:StaffID"`
	Details       []OrderDetail  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Histories     []OrderHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
