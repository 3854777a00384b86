package histories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
)

// Recorder appends immutable order-history rows. It never reads or validates;
// transition validation belongs to the workflow engine. Checkout (the initial
// pending record) and later transitions share this one code path.
type Recorder interface {
	Append(ctx context.Context, tx *gorm.DB, actorUserID, orderID uuid.UUID, status enums.OrderStatus) (*models.OrderHistory, error)
}

type recorder struct{}

// NewRecorder builds the history recorder.
func NewRecorder() Recorder {
	return recorder{}
}

// Append inserts one history row using the caller's transaction so the status
// mutation and its audit record commit or roll back together.
func (recorder) Append(ctx context.Context, tx *gorm.DB, actorUserID, orderID uuid.UUID, status enums.OrderStatus) (*models.OrderHistory, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction handle required")
	}
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("order id required")
	}
	if actorUserID == uuid.Nil {
		return nil, fmt.Errorf("actor user id required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	record := models.OrderHistory{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    status,
		CreatedBy: actorUserID,
	}
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
