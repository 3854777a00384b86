package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

var listSortColumns = map[string]string{
	"created_at": "created_at",
	"type":       "type",
}

// Repository persists notifications and their per-user seen rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	FindByIDForTarget(ctx context.Context, id uuid.UUID, target string) (*models.Notification, error)
	FindAllForTarget(ctx context.Context, target string) ([]models.Notification, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	SeenExists(ctx context.Context, notificationID, userID uuid.UUID) (bool, error)
	InsertSeen(ctx context.Context, seen *models.NotificationSeen) error
	ListForTarget(ctx context.Context, target string, userID uuid.UUID, seen bool, params pagination.Params) ([]models.Notification, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a notifications repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *repository) FindByIDForTarget(ctx context.Context, id uuid.UUID, target string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).
		Where("id = ? AND target = ?", id, target).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *repository) FindAllForTarget(ctx context.Context, target string) ([]models.Notification, error) {
	var rows []models.Notification
	err := r.db.WithContext(ctx).
		Where("target = ?", target).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SeenExists(ctx context.Context, notificationID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NotificationSeen{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) InsertSeen(ctx context.Context, seen *models.NotificationSeen) error {
	return r.db.WithContext(ctx).Create(seen).Error
}

// ListForTarget returns the seen or unseen partition of a target's
// notifications for one user. Membership is a set-difference against the
// user's seen rows, ordered by creation time descending.
func (r *repository) ListForTarget(ctx context.Context, target string, userID uuid.UUID, seen bool, params pagination.Params) ([]models.Notification, int64, error) {
	params = params.Normalize()

	seenIDs := r.db.
		Model(&models.NotificationSeen{}).
		Select("notification_id").
		Where("user_id = ?", userID)

	query := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("target = ?", target)
	if seen {
		query = query.Where("id IN (?)", seenIDs)
	} else {
		query = query.Where("id NOT IN (?)", seenIDs)
	}

	if field, value := params.SearchTerm(); value != "" && (field == "" || field == "description") {
		query = query.Where("description LIKE ?", "%"+value+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := params.SortOrDefault(pagination.Sort{Field: "created_at", Direction: "desc"}).
		Clause(listSortColumns, "created_at DESC")
	query = query.Order(order)

	if params.IsPage {
		query = query.Limit(params.Limit).Offset(params.Offset())
	}

	var rows []models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
