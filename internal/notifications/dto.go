package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
)

// NotificationResponse is the wire form of one notification.
type NotificationResponse struct {
	ID          uuid.UUID              `json:"id"`
	FromUserID  uuid.UUID              `json:"from_user_id"`
	Description string                 `json:"description"`
	Type        enums.NotificationType `json:"type"`
	Target      string                 `json:"target"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewNotificationResponse shapes one notification row.
func NewNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		FromUserID:  n.FromUserID,
		Description: n.Description,
		Type:        n.Type,
		Target:      n.Target,
		CreatedAt:   n.CreatedAt,
	}
}

// NewNotificationResponses shapes a list preserving order.
func NewNotificationResponses(rows []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewNotificationResponse(row))
	}
	return out
}
