package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSeen records one user's acknowledgment of one notification.
// The (notification_id, user_id) unique index is the backstop that keeps
// concurrent acknowledge calls idempotent.
type NotificationSeen struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;not null;uniqueIndex:idx_notification_seen_pair"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_notification_seen_pair"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical join-table name.
func (NotificationSeen) TableName() string {
	return "notification_seen_users"
}
