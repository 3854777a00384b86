package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/pkg/db"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

const seenPairConstraint = "idx_notification_seen_pair"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries the fields of a new notification.
type CreateInput struct {
	FromUserID  uuid.UUID
	Description string
	Type        enums.NotificationType
	Target      Target
}

// MarkSeenResult reports the outcome of one acknowledge call. AlreadySeen
// distinguishes the idempotent repeat from the first acknowledgment.
type MarkSeenResult struct {
	Notification *models.Notification
	AlreadySeen  bool
}

// ListResult carries one page of notifications with its page metadata.
type ListResult struct {
	Items []models.Notification
	Page  pagination.Result
}

// Service defines the notification operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Notification, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkAsSeen(ctx context.Context, notificationID, userID uuid.UUID, isAdmin bool) (*MarkSeenResult, error)
	MarkAllAsSeen(ctx context.Context, userID uuid.UUID, isAdmin bool) (int, error)
	GetUnseen(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params) (*ListResult, error)
	GetSeen(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params) (*ListResult, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires notification dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Notification, error) {
	if input.FromUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "originating user id required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	typ, err := enums.ParseNotificationType(string(input.Type))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	notification := &models.Notification{
		ID:          uuid.New(),
		FromUserID:  input.FromUserID,
		Description: input.Description,
		Type:        typ,
		Target:      input.Target.String(),
	}
	created, err := s.repo.Create(ctx, notification)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification")
	}
	return notification, nil
}

// MarkAsSeen inserts the (notification, user) seen pair unless it already
// exists. A unique-violation on insert is folded into the already-seen
// outcome so racing acknowledge calls both succeed.
func (s *service) MarkAsSeen(ctx context.Context, notificationID, userID uuid.UUID, isAdmin bool) (*MarkSeenResult, error) {
	if notificationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	target := TargetForUser(userID, isAdmin)
	notification, err := s.repo.FindByIDForTarget(ctx, notificationID, target.String())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification")
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	seen, err := s.repo.SeenExists(ctx, notificationID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check seen state")
	}
	if seen {
		return &MarkSeenResult{Notification: notification, AlreadySeen: true}, nil
	}

	row := &models.NotificationSeen{
		ID:             uuid.New(),
		NotificationID: notificationID,
		UserID:         userID,
	}
	if err := s.repo.InsertSeen(ctx, row); err != nil {
		if db.IsUniqueViolation(err, seenPairConstraint) {
			return &MarkSeenResult{Notification: notification, AlreadySeen: true}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert seen row")
	}
	return &MarkSeenResult{Notification: notification, AlreadySeen: false}, nil
}

// MarkAllAsSeen acknowledges every notification of the user's target in one
// transaction and returns how many new seen rows were written.
func (s *service) MarkAllAsSeen(ctx context.Context, userID uuid.UUID, isAdmin bool) (int, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	target := TargetForUser(userID, isAdmin)
	marked := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		rows, err := repo.FindAllForTarget(ctx, target.String())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notifications")
		}
		for _, notification := range rows {
			seen, err := repo.SeenExists(ctx, notification.ID, userID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check seen state")
			}
			if seen {
				continue
			}
			row := &models.NotificationSeen{
				ID:             uuid.New(),
				NotificationID: notification.ID,
				UserID:         userID,
			}
			if err := repo.InsertSeen(ctx, row); err != nil {
				if db.IsUniqueViolation(err, seenPairConstraint) {
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert seen row")
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

func (s *service) GetUnseen(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params) (*ListResult, error) {
	return s.list(ctx, userID, isAdmin, params, false)
}

func (s *service) GetSeen(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params) (*ListResult, error) {
	return s.list(ctx, userID, isAdmin, params, true)
}

func (s *service) list(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params, seen bool) (*ListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	target := TargetForUser(userID, isAdmin)
	rows, total, err := s.repo.ListForTarget(ctx, target.String(), userID, seen, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return &ListResult{
		Items: rows,
		Page:  pagination.NewResult(params, total),
	}, nil
}
