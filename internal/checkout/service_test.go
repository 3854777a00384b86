package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/internal/cart"
	"github.com/waiyanphyo/shopdesk-backend/internal/customers"
	"github.com/waiyanphyo/shopdesk-backend/internal/locations"
	"github.com/waiyanphyo/shopdesk-backend/internal/notifications"
	"github.com/waiyanphyo/shopdesk-backend/internal/orders"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

type fakeOrdersRepo struct {
	orders    map[uuid.UUID]*models.Order
	details   map[uuid.UUID][]models.OrderDetail
	createErr error
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{
		orders:  map[uuid.UUID]*models.Order{},
		details: map[uuid.UUID][]models.OrderDetail{},
	}
}

func (f *fakeOrdersRepo) WithTx(tx *gorm.DB) orders.Repository { return f }

func (f *fakeOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrdersRepo) CreateDetails(ctx context.Context, details []models.OrderDetail) error {
	for _, detail := range details {
		f.details[detail.OrderID] = append(f.details[detail.OrderID], detail)
	}
	return nil
}

func (f *fakeOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := f.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrdersRepo) FindByRef(ctx context.Context, ref string) (*models.Order, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return f.FindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrdersRepo) List(ctx context.Context, params pagination.Params, forUserID *uuid.UUID) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, update orders.StatusUpdate) error {
	return nil
}

func (f *fakeOrdersRepo) UpdateAmount(ctx context.Context, orderID uuid.UUID, amountCents int64) error {
	if order, ok := f.orders[orderID]; ok {
		order.AmountCents = amountCents
	}
	return nil
}

func (f *fakeOrdersRepo) FindDetails(ctx context.Context, orderID uuid.UUID) ([]models.OrderDetail, error) {
	return f.details[orderID], nil
}

func (f *fakeOrdersRepo) FindHistories(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error) {
	return nil, nil
}

type fakeCustomersRepo struct {
	byUserID map[uuid.UUID]*models.Customer
}

func (f *fakeCustomersRepo) WithTx(tx *gorm.DB) customers.Repository { return f }

func (f *fakeCustomersRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	if customer, ok := f.byUserID[userID]; ok {
		return customer, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeLocationsRepo struct {
	byID map[uuid.UUID]*models.Location
}

func (f *fakeLocationsRepo) WithTx(tx *gorm.DB) locations.Repository { return f }

func (f *fakeLocationsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	if location, ok := f.byID[id]; ok {
		return location, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCartRepo struct {
	clearedFor []uuid.UUID
	clearErr   error
}

func (f *fakeCartRepo) WithTx(tx *gorm.DB) cart.Repository { return f }

func (f *fakeCartRepo) FindForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return nil, nil
}

func (f *fakeCartRepo) ClearForUser(ctx context.Context, userID uuid.UUID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clearedFor = append(f.clearedFor, userID)
	return nil
}

type fakeRecorder struct {
	appended []models.OrderHistory
	err      error
}

func (f *fakeRecorder) Append(ctx context.Context, tx *gorm.DB, actorUserID, orderID uuid.UUID, status enums.OrderStatus) (*models.OrderHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	record := models.OrderHistory{ID: uuid.New(), OrderID: orderID, Status: status, CreatedBy: actorUserID}
	f.appended = append(f.appended, record)
	return &record, nil
}

type fakeNotifier struct {
	created []notifications.CreateInput
	err     error
}

func (f *fakeNotifier) Create(ctx context.Context, input notifications.CreateInput) (*models.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)
	return &models.Notification{ID: uuid.New()}, nil
}

func (f *fakeNotifier) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotifier) MarkAsSeen(ctx context.Context, notificationID, userID uuid.UUID, isAdmin bool) (*notifications.MarkSeenResult, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkAllAsSeen(ctx context.Context, userID uuid.UUID, isAdmin bool) (int, error) {
	return 0, nil
}

func (f *fakeNotifier) GetUnseen(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (f *fakeNotifier) GetSeen(ctx context.Context, userID uuid.UUID, isAdmin bool, params pagination.Params) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type checkoutFixture struct {
	ordersRepo    *fakeOrdersRepo
	customersRepo *fakeCustomersRepo
	locationsRepo *fakeLocationsRepo
	cartRepo      *fakeCartRepo
	recorder      *fakeRecorder
	notifier      *fakeNotifier
	svc           Service

	customerUserID uuid.UUID
	customer       *models.Customer
	location       *models.Location
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	fx := &checkoutFixture{
		ordersRepo:    newFakeOrdersRepo(),
		customersRepo: &fakeCustomersRepo{byUserID: map[uuid.UUID]*models.Customer{}},
		locationsRepo: &fakeLocationsRepo{byID: map[uuid.UUID]*models.Location{}},
		cartRepo:      &fakeCartRepo{},
		recorder:      &fakeRecorder{},
		notifier:      &fakeNotifier{},
	}

	fx.customerUserID = uuid.New()
	fx.customer = &models.Customer{ID: uuid.New(), UserID: fx.customerUserID, Name: "Customer One"}
	fx.customersRepo.byUserID[fx.customerUserID] = fx.customer

	fx.location = &models.Location{ID: uuid.New(), Name: "Downtown", PriceCents: 500}
	fx.locationsRepo.byID[fx.location.ID] = fx.location

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(fx.ordersRepo, fx.customersRepo, fx.locationsRepo, fx.cartRepo, fx.recorder, fakeTxRunner{}, fx.notifier, logg)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	fx.svc = svc
	return fx
}

func validInput(fx *checkoutFixture) CreateOrderInput {
	return CreateOrderInput{
		CustomerUserID:  fx.customerUserID,
		LocationID:      fx.location.ID,
		PaymentMethodID: uuid.New(),
		Items: []LineItemInput{
			{ProductID: uuid.New(), ProductPriceID: uuid.New(), ProductName: "Blue Tee", UnitPriceCents: 1000, Qty: 2},
			{ProductID: uuid.New(), ProductPriceID: uuid.New(), ProductName: "Socks", UnitPriceCents: 500, Qty: 1},
		},
	}
}

func TestCreateOrderHappyPath(t *testing.T) {
	fx := newCheckoutFixture(t)

	order, err := fx.svc.CreateOrder(context.Background(), validInput(fx))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.Status != enums.OrderStatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if order.AmountCents != 2500 {
		t.Fatalf("amount = %d, want 2500", order.AmountCents)
	}
	if order.CustomerID != fx.customer.ID {
		t.Fatalf("customer id mismatch")
	}
	if order.LocationPriceCents != 500 {
		t.Fatalf("location price not snapshotted: %d", order.LocationPriceCents)
	}
	if len(order.Number) != 17 {
		t.Fatalf("order number %q not fixed width", order.Number)
	}

	details := fx.ordersRepo.details[order.ID]
	if len(details) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(details))
	}
	var sum int64
	for _, detail := range details {
		sum += detail.TotalCents
	}
	if sum != order.AmountCents {
		t.Fatalf("amount %d != sum of line totals %d", order.AmountCents, sum)
	}

	if len(fx.recorder.appended) != 1 || fx.recorder.appended[0].Status != enums.OrderStatusPending {
		t.Fatalf("expected one pending history record, got %+v", fx.recorder.appended)
	}
	if len(fx.cartRepo.clearedFor) != 1 || fx.cartRepo.clearedFor[0] != fx.customerUserID {
		t.Fatalf("cart not cleared for customer")
	}
	if len(fx.notifier.created) != 1 {
		t.Fatalf("expected one admin notification, got %d", len(fx.notifier.created))
	}
	if !fx.notifier.created[0].Target.IsAdmin() {
		t.Fatalf("checkout notification must target the admin pool")
	}
	if fx.notifier.created[0].Type != enums.NotificationTypeOrderCreated {
		t.Fatalf("notification type = %s", fx.notifier.created[0].Type)
	}
}

func TestCreateOrderEmptyItemsRejectedBeforePersisting(t *testing.T) {
	fx := newCheckoutFixture(t)

	input := validInput(fx)
	input.Items = nil

	_, err := fx.svc.CreateOrder(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(fx.ordersRepo.orders) != 0 {
		t.Fatalf("no order row may be persisted for an empty cart")
	}
	if len(fx.cartRepo.clearedFor) != 0 {
		t.Fatalf("cart must not be cleared on failure")
	}
}

func TestCreateOrderCustomerMissing(t *testing.T) {
	fx := newCheckoutFixture(t)

	input := validInput(fx)
	input.CustomerUserID = uuid.New()

	_, err := fx.svc.CreateOrder(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for missing customer profile, got %v", err)
	}
}

func TestCreateOrderLocationMissing(t *testing.T) {
	fx := newCheckoutFixture(t)

	input := validInput(fx)
	input.LocationID = uuid.New()

	_, err := fx.svc.CreateOrder(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for missing location, got %v", err)
	}
}

func TestCreateOrderPersistenceFailureLeavesCart(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.ordersRepo.createErr = errors.New("insert failed")

	_, err := fx.svc.CreateOrder(context.Background(), validInput(fx))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
	if len(fx.cartRepo.clearedFor) != 0 {
		t.Fatalf("cart must stay untouched when the transaction fails")
	}
	if len(fx.notifier.created) != 0 {
		t.Fatalf("no notification may be sent for a failed checkout")
	}
}

func TestCreateOrderCartClearFailureStillSucceeds(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.cartRepo.clearErr = errors.New("cart store down")

	order, err := fx.svc.CreateOrder(context.Background(), validInput(fx))
	if err != nil {
		t.Fatalf("cart-clear failure must not fail the checkout, got %v", err)
	}
	if order == nil || order.Status != enums.OrderStatusPending {
		t.Fatalf("committed order lost")
	}
}

func TestCreateOrderDiscountRecordedWithoutReducingTotal(t *testing.T) {
	fx := newCheckoutFixture(t)

	input := validInput(fx)
	input.Items = []LineItemInput{
		{ProductID: uuid.New(), ProductPriceID: uuid.New(), ProductName: "Jacket", UnitPriceCents: 5000, Qty: 2, DiscountCents: 1000},
	}

	order, err := fx.svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.AmountCents != 10000 {
		t.Fatalf("amount = %d, want 10000 (price times qty, discount informational)", order.AmountCents)
	}

	details := fx.ordersRepo.details[order.ID]
	if len(details) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(details))
	}
	if details[0].TotalCents != 10000 {
		t.Fatalf("line total = %d, want 10000", details[0].TotalCents)
	}
	if details[0].DiscountCents != 1000 {
		t.Fatalf("discount not recorded on the line: %d", details[0].DiscountCents)
	}
}

func TestCreateOrderOversizedDiscountNeverGoesNegative(t *testing.T) {
	fx := newCheckoutFixture(t)

	input := validInput(fx)
	input.Items = []LineItemInput{
		{ProductID: uuid.New(), ProductPriceID: uuid.New(), ProductName: "Clearance Cap", UnitPriceCents: 500, Qty: 1, DiscountCents: 2000},
	}

	order, err := fx.svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.AmountCents != 500 {
		t.Fatalf("amount = %d, want 500", order.AmountCents)
	}
	if order.AmountCents < 0 {
		t.Fatalf("order amount must never be negative, got %d", order.AmountCents)
	}
}
