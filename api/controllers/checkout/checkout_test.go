package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waiyanphyo/shopdesk-backend/api/middleware"
	internalcheckout "github.com/waiyanphyo/shopdesk-backend/internal/checkout"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
)

type fakeCheckoutService struct {
	gotInput internalcheckout.CreateOrderInput
	order    *models.Order
}

func (f *fakeCheckoutService) CreateOrder(ctx context.Context, input internalcheckout.CreateOrderInput) (*models.Order, error) {
	f.gotInput = input
	return f.order, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "checkout-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		raw     string
		cents   int64
		wantErr bool
	}{
		{raw: "", cents: 0},
		{raw: "10", cents: 1000},
		{raw: "10.00", cents: 1000},
		{raw: "0.05", cents: 5},
		{raw: "19.99", cents: 1999},
		{raw: "-1", wantErr: true},
		{raw: "1.005", wantErr: true},
		{raw: "abc", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			cents, err := parseMoney("unit_price", tc.raw)
			if tc.wantErr {
				require.NotNil(t, err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tc.cents, cents)
		})
	}
}

func validBody() map[string]any {
	return map[string]any{
		"location_id":        uuid.NewString(),
		"payment_method_id":  uuid.NewString(),
		"payment_attachment": "receipt.png",
		"items": []map[string]any{
			{
				"product_id":       uuid.NewString(),
				"product_price_id": uuid.NewString(),
				"product_name":     "Denim Jacket",
				"unit_price":       "49.99",
				"qty":              2,
				"discount":         "5.00",
			},
		},
	}
}

func doRequest(t *testing.T, svc internalcheckout.Service, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(string(raw)))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	Create(svc, testLogger())(rec, req)
	return rec
}

func TestCreateConvertsMoneyToCents(t *testing.T) {
	svc := &fakeCheckoutService{order: &models.Order{
		ID:     uuid.New(),
		Number: "17565432100009999",
		Status: enums.OrderStatusPending,
	}}

	rec := doRequest(t, svc, validBody(), uuid.NewString())

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, svc.gotInput.Items, 1)
	assert.Equal(t, int64(4999), svc.gotInput.Items[0].UnitPriceCents)
	assert.Equal(t, int64(500), svc.gotInput.Items[0].DiscountCents)
	assert.Equal(t, 2, svc.gotInput.Items[0].Qty)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, fmt.Sprintf("Order %s created", svc.order.Number), resp.Message)
}

func TestCreateRejectsMissingIdentity(t *testing.T) {
	svc := &fakeCheckoutService{}

	rec := doRequest(t, svc, validBody(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc := &fakeCheckoutService{}

	body := validBody()
	body["items"] = []map[string]any{}
	rec := doRequest(t, svc, body, uuid.NewString())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRejectsSubCentPrice(t *testing.T) {
	svc := &fakeCheckoutService{}

	body := validBody()
	body["items"].([]map[string]any)[0]["unit_price"] = "10.001"
	rec := doRequest(t, svc, body, uuid.NewString())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRejectsUnknownField(t *testing.T) {
	svc := &fakeCheckoutService{}

	body := validBody()
	body["surprise"] = true
	rec := doRequest(t, svc, body, uuid.NewString())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
