package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/internal/cart"
	"github.com/waiyanphyo/shopdesk-backend/internal/customers"
	"github.com/waiyanphyo/shopdesk-backend/internal/histories"
	"github.com/waiyanphyo/shopdesk-backend/internal/locations"
	"github.com/waiyanphyo/shopdesk-backend/internal/notifications"
	"github.com/waiyanphyo/shopdesk-backend/internal/orders"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// LineItemInput is one requested purchase line with its catalog snapshot.
type LineItemInput struct {
	ProductID      uuid.UUID
	ProductPriceID uuid.UUID
	ProductName    string
	CategoryID     *uuid.UUID
	CategoryName   *string
	BrandID        *uuid.UUID
	BrandName      *string
	ColorID        *uuid.UUID
	ColorName      *string
	Size           *string
	UnitPriceCents int64
	Qty            int
	DiscountCents  int64
}

// CreateOrderInput carries one checkout request.
type CreateOrderInput struct {
	CustomerUserID    uuid.UUID
	LocationID        uuid.UUID
	PaymentMethodID   uuid.UUID
	PaymentAttachment string
	Note              *string
	Items             []LineItemInput
}

// Service converts a customer's cart submission into an order.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
}

type service struct {
	orders    orders.Repository
	customers customers.Repository
	locations locations.Repository
	cart      cart.Repository
	recorder  histories.Recorder
	tx        txRunner
	notifier  notifications.Service
	logg      *logger.Logger
}

// NewService wires the checkout orchestrator dependencies.
func NewService(
	ordersRepo orders.Repository,
	customersRepo customers.Repository,
	locationsRepo locations.Repository,
	cartRepo cart.Repository,
	recorder histories.Recorder,
	tx txRunner,
	notifier notifications.Service,
	logg *logger.Logger,
) (Service, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if locationsRepo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
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
		orders:    ordersRepo,
		customers: customersRepo,
		locations: locationsRepo,
		cart:      cartRepo,
		recorder:  recorder,
		tx:        tx,
		notifier:  notifier,
		logg:      logg,
	}, nil
}

// CreateOrder creates the order, its line items and the initial pending
// history in one transaction. The cart is cleared only after the commit
// succeeds, so a failed checkout leaves the cart untouched.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.CustomerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location id required")
	}
	if input.PaymentMethodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item required")
	}
	for i, item := range input.Items {
		if item.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line item %d: qty must be positive", i))
		}
		if item.UnitPriceCents < 0 || item.DiscountCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line item %d: negative amount", i))
		}
	}

	customer, err := s.customers.FindByUserID(ctx, input.CustomerUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer profile")
	}

	location, err := s.locations.FindByID(ctx, input.LocationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:                 uuid.New(),
		Number:             orders.NewNumber(now),
		Status:             enums.OrderStatusPending,
		AmountCents:        0,
		CustomerID:         customer.ID,
		LocationID:         location.ID,
		LocationPriceCents: location.PriceCents,
		PaymentMethodID:    input.PaymentMethodID,
		PaymentAttachment:  input.PaymentAttachment,
		Note:               input.Note,
		CreatedBy:          input.CustomerUserID,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.orders.WithTx(tx)

		if _, err := repo.Create(ctx, order); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		details := make([]models.OrderDetail, 0, len(input.Items))
		var amount int64
		for _, item := range input.Items {
			// The discount is recorded on the line but never reduces the
			// total; the line total is strictly price times quantity.
			total := item.UnitPriceCents * int64(item.Qty)
			amount += total
			details = append(details, models.OrderDetail{
				ID:             uuid.New(),
				OrderID:        order.ID,
				ProductID:      item.ProductID,
				ProductPriceID: item.ProductPriceID,
				ProductName:    item.ProductName,
				CategoryID:     item.CategoryID,
				CategoryName:   item.CategoryName,
				BrandID:        item.BrandID,
				BrandName:      item.BrandName,
				ColorID:        item.ColorID,
				ColorName:      item.ColorName,
				Size:           item.Size,
				UnitPriceCents: item.UnitPriceCents,
				Qty:            item.Qty,
				DiscountCents:  item.DiscountCents,
				TotalCents:     total,
				CreatedBy:      input.CustomerUserID,
			})
		}
		if err := repo.CreateDetails(ctx, details); err != nil {
			return fmt.Errorf("creating order details: %w", err)
		}

		if err := repo.UpdateAmount(ctx, order.ID, amount); err != nil {
			return fmt.Errorf("updating order amount: %w", err)
		}
		order.AmountCents = amount

		if _, err := s.recorder.Append(ctx, tx, input.CustomerUserID, order.ID, enums.OrderStatusPending); err != nil {
			return fmt.Errorf("appending initial history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	ctx = s.logg.WithOrderNumber(ctx, order.Number)

	// Post-commit side effects. The order is durable at this point, so both
	// failures below are logged and swallowed.
	if err := s.cart.ClearForUser(ctx, input.CustomerUserID); err != nil {
		s.logg.Error(ctx, "clearing cart after checkout failed", err)
	}

	if _, err := s.notifier.Create(ctx, notifications.CreateInput{
		FromUserID:  input.CustomerUserID,
		Description: fmt.Sprintf("New order arrival: %s", order.Number),
		Type:        enums.NotificationTypeOrderCreated,
		Target:      notifications.AdminTarget(),
	}); err != nil {
		s.logg.Error(ctx, "dispatching new-order notification failed", err)
	}

	created, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		// The commit already succeeded; fall back to the in-memory copy.
		s.logg.Warn(ctx, "reloading created order failed")
		return order, nil
	}
	return created, nil
}
