package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/api/middleware"
	"github.com/waiyanphyo/shopdesk-backend/api/responses"
	"github.com/waiyanphyo/shopdesk-backend/internal/orders"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

// actorScope resolves the acting user and their read scope from the request
// context. Customers only see their own orders; backoffice roles see all.
func actorScope(r *http.Request) (orders.Scope, *pkgerrors.Error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return orders.Scope{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	role := enums.Role(middleware.RoleFromContext(r.Context()))
	return orders.Scope{UserID: userID, Backoffice: role.IsBackoffice()}, nil
}

// List renders one page of orders. Search accepts number:<value>,
// status:<value> or free text (uuid or order number).
func List(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		scope, authErr := actorScope(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		params := pagination.FromQuery(r.URL.Query())
		result, err := svc.List(r.Context(), params, scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, orders.NewOrderResponses(result.Items), result.Page, "")
	}
}

// Detail loads one order by id or order number.
func Detail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		scope, authErr := actorScope(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		ref := chi.URLParam(r, "orderRef")
		order, err := svc.Get(r.Context(), ref, scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders.NewOrderResponse(*order), "")
	}
}

// Details loads the line items of one order.
func Details(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		scope, authErr := actorScope(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a valid uuid"))
			return
		}

		rows, svcErr := svc.Details(r.Context(), orderID, scope)
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}

		responses.WriteSuccess(w, orders.NewOrderDetailResponses(rows), "")
	}
}

// Histories loads the audit trail of one order by id or order number.
func Histories(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		scope, authErr := actorScope(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		ref := chi.URLParam(r, "orderRef")
		rows, err := svc.Histories(r.Context(), ref, scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders.NewHistoryResponses(rows), "")
	}
}

// Transition applies one status move to an order. Rejected moves (unknown
// order, repeated status, illegal transition) still answer 200 with the
// outcome message in the envelope, matching how the admin console consumes
// workflow results.
func Transition(svc orders.Service, logg *logger.Logger, target enums.OrderStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a valid uuid"))
			return
		}

		actorID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
			return
		}

		result, svcErr := svc.Process(r.Context(), orders.ProcessInput{
			OrderID:      orderID,
			Target:       target,
			ActingUserID: actorID,
		})
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}

		if result.Outcome == orders.OutcomeUpdated {
			responses.WriteSuccess(w, orders.NewOrderResponse(*result.Order), result.Message)
			return
		}
		responses.WriteSuccess(w, nil, result.Message)
	}
}
