package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
)

// Notification stores one in-app notification. Target is the persisted string
// form of the recipient selector ("admin" or "customer:<uuid>").
type Notification struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FromUserID  uuid.UUID              `gorm:"column:from_user_id;type:uuid;not null"`
	Description string                 `gorm:"column:description;type:text;not null"`
	Type        enums.NotificationType `gorm:"column:type;type:text;not null"`
	Target      string                 `gorm:"column:target;type:text;not null;index"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}
