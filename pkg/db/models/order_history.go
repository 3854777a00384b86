package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
)

// OrderHistory is one append-only audit record per accepted status change.
// Rows are never updated or deleted; ordering is created_at ascending.
type OrderHistory struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null"`
	CreatedBy uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical table name.
func (OrderHistory) TableName() string {
	return "order_histories"
}
