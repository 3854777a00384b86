package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/internal/histories"
	"github.com/waiyanphyo/shopdesk-backend/internal/notifications"
	"github.com/waiyanphyo/shopdesk-backend/internal/staff"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ProcessOutcome classifies the result of one transition request. Soft
// outcomes (not found, already in state, invalid transition) are reported as
// results rather than errors so the HTTP layer renders them as 200 bodies.
type ProcessOutcome string

const (
	OutcomeUpdated           ProcessOutcome = "updated"
	OutcomeNotFound          ProcessOutcome = "not_found"
	OutcomeAlreadyInState    ProcessOutcome = "already_in_state"
	OutcomeInvalidTransition ProcessOutcome = "invalid_transition"
)

// ProcessInput carries one transition request.
type ProcessInput struct {
	OrderID      uuid.UUID
	Target       enums.OrderStatus
	ActingUserID uuid.UUID
}

// ProcessResult reports the transition outcome with a client-facing message.
type ProcessResult struct {
	Outcome ProcessOutcome
	Order   *models.Order
	Message string
}

// ListResult carries one page of orders with its page metadata.
type ListResult struct {
	Items []models.Order
	Page  pagination.Result
}

// Scope restricts read operations to the acting user's own orders unless the
// actor belongs to the backoffice pool. A customer probing another customer's
// order gets the same not-found answer as for a nonexistent one.
type Scope struct {
	UserID     uuid.UUID
	Backoffice bool
}

// Service defines the order read and workflow operations.
type Service interface {
	Get(ctx context.Context, ref string, scope Scope) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, scope Scope) (*ListResult, error)
	Details(ctx context.Context, orderID uuid.UUID, scope Scope) ([]models.OrderDetail, error)
	Histories(ctx context.Context, ref string, scope Scope) ([]models.OrderHistory, error)
	Process(ctx context.Context, input ProcessInput) (*ProcessResult, error)
}

type service struct {
	repo     Repository
	staff    staff.Repository
	recorder histories.Recorder
	tx       txRunner
	notifier notifications.Service
	logg     *logger.Logger
}

// NewService wires the workflow engine dependencies.
func NewService(repo Repository, staffRepo staff.Repository, recorder histories.Recorder, tx txRunner, notifier notifications.Service, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if staffRepo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("history recorder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notification service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		staff:    staffRepo,
		recorder: recorder,
		tx:       tx,
		notifier: notifier,
		logg:     logg,
	}, nil
}

// visibleTo reports whether the scoped actor may read the order.
func visibleTo(order *models.Order, scope Scope) bool {
	if scope.Backoffice {
		return true
	}
	return order.Customer != nil && order.Customer.UserID == scope.UserID
}

func (s *service) Get(ctx context.Context, ref string, scope Scope) (*models.Order, error) {
	if ref == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order reference required")
	}
	order, err := s.repo.FindByRef(ctx, ref)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !visibleTo(order, scope) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, scope Scope) (*ListResult, error) {
	var forUserID *uuid.UUID
	if !scope.Backoffice {
		forUserID = &scope.UserID
	}
	rows, total, err := s.repo.List(ctx, params, forUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return &ListResult{
		Items: rows,
		Page:  pagination.NewResult(params, total),
	}, nil
}

func (s *service) Details(ctx context.Context, orderID uuid.UUID, scope Scope) ([]models.OrderDetail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !visibleTo(order, scope) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	details, err := s.repo.FindDetails(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order details")
	}
	return details, nil
}

func (s *service) Histories(ctx context.Context, ref string, scope Scope) ([]models.OrderHistory, error) {
	order, err := s.Get(ctx, ref, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindHistories(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order histories")
	}
	return rows, nil
}

// Process validates and applies one status transition. The status mutation
// and its history record commit atomically; the customer notification is
// dispatched after commit and its failure never surfaces to the caller.
func (s *service) Process(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActingUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target status required")
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &ProcessResult{
				Outcome: OutcomeNotFound,
				Message: "Order not found",
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.Status == input.Target {
		return &ProcessResult{
			Outcome: OutcomeAlreadyInState,
			Order:   order,
			Message: fmt.Sprintf("Order status already %s", order.Status),
		}, nil
	}
	if !CanTransition(order.Status, input.Target) {
		return &ProcessResult{
			Outcome: OutcomeInvalidTransition,
			Order:   order,
			Message: fmt.Sprintf("Invalid status transition from %s to %s", order.Status, input.Target),
		}, nil
	}

	var assignedStaff *models.Staff
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		member, err := s.staff.WithTx(tx).FindByUserID(ctx, input.ActingUserID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("resolving staff: %w", err)
		}

		update := StatusUpdate{
			Status:    input.Target.String(),
			UpdatedBy: input.ActingUserID,
		}
		if member != nil {
			assignedStaff = member
			update.StaffID = &member.ID
		}
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, order.ID, update); err != nil {
			return fmt.Errorf("updating order status: %w", err)
		}

		if _, err := s.recorder.Append(ctx, tx, input.ActingUserID, order.ID, input.Target); err != nil {
			return fmt.Errorf("appending history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply status transition")
	}

	order.Status = input.Target
	order.UpdatedBy = &input.ActingUserID
	if assignedStaff != nil {
		order.StaffID = &assignedStaff.ID
		order.Staff = assignedStaff
	}

	s.notifyCustomer(ctx, order, input)

	return &ProcessResult{
		Outcome: OutcomeUpdated,
		Order:   order,
		Message: fmt.Sprintf("Order has been %s", input.Target),
	}, nil
}

// notifyCustomer is best-effort: the transition is already committed, so a
// dispatch failure is logged and swallowed.
func (s *service) notifyCustomer(ctx context.Context, order *models.Order, input ProcessInput) {
	if order.Customer == nil {
		s.logg.Warn(s.logg.WithOrderNumber(ctx, order.Number), "customer missing on order, skipping notification")
		return
	}
	_, err := s.notifier.Create(ctx, notifications.CreateInput{
		FromUserID:  input.ActingUserID,
		Description: fmt.Sprintf("Order %s has been %s", order.Number, input.Target),
		Type:        enums.NotificationTypeOrderStatus,
		Target:      notifications.CustomerTarget(order.Customer.UserID),
	})
	if err != nil {
		s.logg.Error(s.logg.WithOrderNumber(ctx, order.Number), "dispatching status notification failed", err)
	}
}
