package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	"github.com/waiyanphyo/shopdesk-backend/pkg/types"
)

// OrderResponse is the wire form of one order. Referenced entities are
// flattened to key/value pairs so clients never chase nested objects.
type OrderResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Number             string            `json:"number"`
	Status             enums.OrderStatus `json:"status"`
	AmountCents        int64             `json:"amount_cents"`
	Customer           *types.KeyValue   `json:"customer"`
	Location           *types.KeyValue   `json:"location"`
	LocationPriceCents int64             `json:"location_price_cents"`
	PaymentMethod      *types.KeyValue   `json:"payment_method"`
	PaymentAttachment  string            `json:"payment_attachment"`
	Note               *string           `json:"note"`
	Staff              *types.KeyValue   `json:"staff"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// OrderDetailResponse is the wire form of one line item snapshot.
type OrderDetailResponse struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	ProductName    string    `json:"product_name"`
	CategoryName   *string   `json:"category_name"`
	BrandName      *string   `json:"brand_name"`
	ColorName      *string   `json:"color_name"`
	Size           *string   `json:"size"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Qty            int       `json:"qty"`
	DiscountCents  int64     `json:"discount_cents"`
	TotalCents     int64     `json:"total_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryResponse is the wire form of one audit record.
type HistoryResponse struct {
	ID        uuid.UUID         `json:"id"`
	OrderID   uuid.UUID         `json:"order_id"`
	Status    enums.OrderStatus `json:"status"`
	CreatedBy uuid.UUID         `json:"created_by"`
	CreatedAt time.Time         `json:"created_at"`
}

func keyValue(id uuid.UUID, name string) *types.KeyValue {
	value := name
	return &types.KeyValue{Key: id.String(), Value: &value}
}

// NewOrderResponse shapes one order row with its preloaded references.
func NewOrderResponse(order models.Order) OrderResponse {
	resp := OrderResponse{
		ID:                 order.ID,
		Number:             order.Number,
		Status:             order.Status,
		AmountCents:        order.AmountCents,
		LocationPriceCents: order.LocationPriceCents,
		PaymentAttachment:  order.PaymentAttachment,
		Note:               order.Note,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
	if order.Customer != nil {
		resp.Customer = keyValue(order.Customer.ID, order.Customer.Name)
	}
	if order.Location != nil {
		resp.Location = keyValue(order.Location.ID, order.Location.Name)
	}
	if order.PaymentMethod != nil {
		resp.PaymentMethod = keyValue(order.PaymentMethod.ID, order.PaymentMethod.Name)
	}
	if order.Staff != nil {
		resp.Staff = keyValue(order.Staff.ID, order.Staff.Name)
	}
	return resp
}

// NewOrderResponses shapes a list preserving order.
func NewOrderResponses(rows []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewOrderResponse(row))
	}
	return out
}

// NewOrderDetailResponses shapes line items preserving order.
func NewOrderDetailResponses(rows []models.OrderDetail) []OrderDetailResponse {
	out := make([]OrderDetailResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, OrderDetailResponse{
			ID:             row.ID,
			OrderID:        row.OrderID,
			ProductName:    row.ProductName,
			CategoryName:   row.CategoryName,
			BrandName:      row.BrandName,
			ColorName:      row.ColorName,
			Size:           row.Size,
			UnitPriceCents: row.UnitPriceCents,
			Qty:            row.Qty,
			DiscountCents:  row.DiscountCents,
			TotalCents:     row.TotalCents,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out
}

// NewHistoryResponses shapes audit records preserving order.
func NewHistoryResponses(rows []models.OrderHistory) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryResponse{
			ID:        row.ID,
			OrderID:   row.OrderID,
			Status:    row.Status,
			CreatedBy: row.CreatedBy,
			CreatedAt: row.CreatedAt,
		})
	}
	return out
}
