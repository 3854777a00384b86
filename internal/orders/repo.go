package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

var listSortColumns = map[string]string{
	"created_at": "orders.created_at",
	"number":     "orders.number",
	"status":     "orders.status",
	"amount":     "orders.amount_cents",
}

// StatusUpdate carries the mutable fields of one accepted transition.
type StatusUpdate struct {
	Status    string
	StaffID   *uuid.UUID
	UpdatedBy uuid.UUID
}

// Repository persists orders, their line items and histories.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateDetails(ctx context.Context, details []models.OrderDetail) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByRef(ctx context.Context, ref string) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, forUserID *uuid.UUID) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, update StatusUpdate) error
	UpdateAmount(ctx context.Context, orderID uuid.UUID, amountCents int64) error
	FindDetails(ctx context.Context, orderID uuid.UUID) ([]models.OrderDetail, error)
	FindHistories(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateDetails(ctx context.Context, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Customer.User").
		Preload("Location").
		Preload("PaymentMethod").
		Preload("Staff")
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.preloaded(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByRef accepts either the opaque order id or the human-readable number.
func (r *repository) FindByRef(ctx context.Context, ref string) (*models.Order, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.FindByID(ctx, id)
	}
	var order models.Order
	err := r.preloaded(ctx).
		Where("number = ?", ref).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns one page of orders. A non-nil forUserID narrows the result to
// orders whose customer profile belongs to that user.
func (r *repository) List(ctx context.Context, params pagination.Params, forUserID *uuid.UUID) ([]models.Order, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if forUserID != nil {
		query = query.
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.user_id = ?", *forUserID)
	}

	if field, value := params.SearchTerm(); value != "" {
		switch field {
		case "number":
			query = query.Where("orders.number LIKE ?", "%"+value+"%")
		case "status":
			query = query.Where("orders.status = ?", value)
		case "":
			if id, err := uuid.Parse(value); err == nil {
				query = query.Where("orders.id = ?", id)
			} else {
				query = query.Where("orders.number LIKE ?", "%"+value+"%")
			}
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := params.SortOrDefault(pagination.Sort{Field: "created_at", Direction: "desc"}).
		Clause(listSortColumns, "orders.created_at DESC")
	query = query.
		Preload("Customer").
		Preload("Location").
		Preload("PaymentMethod").
		Preload("Staff").
		Order(order)

	if params.IsPage {
		query = query.Limit(params.Limit).Offset(params.Offset())
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, update StatusUpdate) error {
	fields := map[string]any{
		"status":     update.Status,
		"updated_by": update.UpdatedBy,
	}
	if update.StaffID != nil {
		fields["staff_id"] = *update.StaffID
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(fields).Error
}

func (r *repository) UpdateAmount(ctx context.Context, orderID uuid.UUID, amountCents int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("amount_cents", amountCents).Error
}

func (r *repository) FindDetails(ctx context.Context, orderID uuid.UUID) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *repository) FindHistories(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error) {
	var rows []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
