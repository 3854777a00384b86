package checkout

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/waiyanphyo/shopdesk-backend/api/middleware"
	"github.com/waiyanphyo/shopdesk-backend/api/responses"
	"github.com/waiyanphyo/shopdesk-backend/api/validators"
	"github.com/waiyanphyo/shopdesk-backend/internal/checkout"
	"github.com/waiyanphyo/shopdesk-backend/internal/orders"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
)

type lineItemRequest struct {
	ProductID      string  `json:"product_id" validate:"required,uuid4"`
	ProductPriceID string  `json:"product_price_id" validate:"required,uuid4"`
	ProductName    string  `json:"product_name" validate:"required"`
	CategoryID     *string `json:"category_id" validate:"omitempty,uuid4"`
	CategoryName   *string `json:"category_name"`
	BrandID        *string `json:"brand_id" validate:"omitempty,uuid4"`
	BrandName      *string `json:"brand_name"`
	ColorID        *string `json:"color_id" validate:"omitempty,uuid4"`
	ColorName      *string `json:"color_name"`
	Size           *string `json:"size"`
	UnitPrice      string  `json:"unit_price" validate:"required"`
	Qty            int     `json:"qty" validate:"required,gt=0"`
	Discount       string  `json:"discount"`
}

type checkoutRequest struct {
	LocationID        string            `json:"location_id" validate:"required,uuid4"`
	PaymentMethodID   string            `json:"payment_method_id" validate:"required,uuid4"`
	PaymentAttachment string            `json:"payment_attachment"`
	Note              *string           `json:"note"`
	Items             []lineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// parseMoney converts a decimal dollar string into cents, rejecting negative
// values and sub-cent precision.
func parseMoney(field, raw string) (int64, *pkgerrors.Error) {
	if raw == "" {
		return 0, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be a decimal amount", field))
	}
	if amount.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must not be negative", field))
	}
	cents := amount.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must not have sub-cent precision", field))
	}
	return cents.IntPart(), nil
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

// Create submits the customer's cart as a new pending order.
func Create(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		actorID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
			return
		}

		var req checkoutRequest
		if decodeErr := validators.DecodeJSONBody(r, &req); decodeErr != nil {
			responses.WriteError(r.Context(), logg, w, decodeErr)
			return
		}

		locationID, _ := uuid.Parse(req.LocationID)
		paymentMethodID, _ := uuid.Parse(req.PaymentMethodID)

		items := make([]checkout.LineItemInput, 0, len(req.Items))
		for i, item := range req.Items {
			unitPrice, moneyErr := parseMoney(fmt.Sprintf("items[%d].unit_price", i), item.UnitPrice)
			if moneyErr != nil {
				responses.WriteError(r.Context(), logg, w, moneyErr)
				return
			}
			discount, moneyErr := parseMoney(fmt.Sprintf("items[%d].discount", i), item.Discount)
			if moneyErr != nil {
				responses.WriteError(r.Context(), logg, w, moneyErr)
				return
			}

			productID, _ := uuid.Parse(item.ProductID)
			productPriceID, _ := uuid.Parse(item.ProductPriceID)
			items = append(items, checkout.LineItemInput{
				ProductID:      productID,
				ProductPriceID: productPriceID,
				ProductName:    item.ProductName,
				CategoryID:     parseOptionalUUID(item.CategoryID),
				CategoryName:   item.CategoryName,
				BrandID:        parseOptionalUUID(item.BrandID),
				BrandName:      item.BrandName,
				ColorID:        parseOptionalUUID(item.ColorID),
				ColorName:      item.ColorName,
				Size:           item.Size,
				UnitPriceCents: unitPrice,
				Qty:            item.Qty,
				DiscountCents:  discount,
			})
		}

		order, svcErr := svc.CreateOrder(r.Context(), checkout.CreateOrderInput{
			CustomerUserID:    actorID,
			LocationID:        locationID,
			PaymentMethodID:   paymentMethodID,
			PaymentAttachment: req.PaymentAttachment,
			Note:              req.Note,
			Items:             items,
		})
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, orders.NewOrderResponse(*order), fmt.Sprintf("Order %s created", order.Number))
	}
}
