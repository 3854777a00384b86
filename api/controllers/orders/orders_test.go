package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waiyanphyo/shopdesk-backend/api/middleware"
	internalorders "github.com/waiyanphyo/shopdesk-backend/internal/orders"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db/models"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

type fakeOrdersService struct {
	process  *internalorders.ProcessResult
	gotInput internalorders.ProcessInput
	gotScope internalorders.Scope
}

func (f *fakeOrdersService) Get(ctx context.Context, ref string, scope internalorders.Scope) (*models.Order, error) {
	f.gotScope = scope
	return &models.Order{ID: uuid.New()}, nil
}

func (f *fakeOrdersService) List(ctx context.Context, params pagination.Params, scope internalorders.Scope) (*internalorders.ListResult, error) {
	f.gotScope = scope
	return &internalorders.ListResult{Page: pagination.NewResult(params, 0)}, nil
}

func (f *fakeOrdersService) Details(ctx context.Context, orderID uuid.UUID, scope internalorders.Scope) ([]models.OrderDetail, error) {
	f.gotScope = scope
	return nil, nil
}

func (f *fakeOrdersService) Histories(ctx context.Context, ref string, scope internalorders.Scope) ([]models.OrderHistory, error) {
	f.gotScope = scope
	return nil, nil
}

func (f *fakeOrdersService) Process(ctx context.Context, input internalorders.ProcessInput) (*internalorders.ProcessResult, error) {
	f.gotInput = input
	return f.process, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "orders-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func doTransition(t *testing.T, svc internalorders.Service, orderID, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/orders/accept/"+orderID, nil)
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", orderID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	Transition(svc, testLogger(), enums.OrderStatusAccepted)(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestTransitionUpdatedRendersOrder(t *testing.T) {
	order := &models.Order{ID: uuid.New(), Number: "17565432100001111", Status: enums.OrderStatusAccepted}
	svc := &fakeOrdersService{process: &internalorders.ProcessResult{
		Outcome: internalorders.OutcomeUpdated,
		Order:   order,
		Message: "Order has been accepted",
	}}

	rec := doTransition(t, svc, order.ID.String(), uuid.NewString())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order has been accepted", decodeMessage(t, rec))
	assert.Equal(t, enums.OrderStatusAccepted, svc.gotInput.Target)
}

func TestTransitionSoftOutcomesAnswerOK(t *testing.T) {
	cases := []struct {
		name    string
		result  *internalorders.ProcessResult
		message string
	}{
		{
			name:    "not found",
			result:  &internalorders.ProcessResult{Outcome: internalorders.OutcomeNotFound, Message: "Order not found"},
			message: "Order not found",
		},
		{
			name: "already in state",
			result: &internalorders.ProcessResult{
				Outcome: internalorders.OutcomeAlreadyInState,
				Message: "Order status already accepted",
			},
			message: "Order status already accepted",
		},
		{
			name: "invalid transition",
			result: &internalorders.ProcessResult{
				Outcome: internalorders.OutcomeInvalidTransition,
				Message: "Invalid status transition from done to accepted",
			},
			message: "Invalid status transition from done to accepted",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeOrdersService{process: tc.result}

			rec := doTransition(t, svc, uuid.NewString(), uuid.NewString())

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.message, decodeMessage(t, rec))
		})
	}
}

func TestListBuildsScopeFromActor(t *testing.T) {
	svc := &fakeOrdersService{}
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, enums.RoleCustomer.String())
	rec := httptest.NewRecorder()
	List(svc, testLogger())(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.gotScope.UserID)
	assert.False(t, svc.gotScope.Backoffice)

	ctx = middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, enums.RoleStaff.String())
	rec = httptest.NewRecorder()
	List(svc, testLogger())(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.gotScope.Backoffice)
}

func TestListRejectsMissingIdentity(t *testing.T) {
	svc := &fakeOrdersService{}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	List(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransitionRejectsBadOrderID(t *testing.T) {
	svc := &fakeOrdersService{}

	rec := doTransition(t, svc, "not-a-uuid", uuid.NewString())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionRejectsMissingIdentity(t *testing.T) {
	svc := &fakeOrdersService{}

	rec := doTransition(t, svc, uuid.NewString(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
