package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/waiyanphyo/shopdesk-backend/api/middleware"
	"github.com/waiyanphyo/shopdesk-backend/api/responses"
	"github.com/waiyanphyo/shopdesk-backend/internal/notifications"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/pagination"
)

func actor(r *http.Request) (uuid.UUID, bool, *pkgerrors.Error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, false, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	role := enums.Role(middleware.RoleFromContext(r.Context()))
	return userID, role.IsBackoffice(), nil
}

// Unseen lists the notifications addressed to the actor that they have not
// acknowledged yet.
func Unseen(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, false)
}

// Seen lists the notifications the actor has already acknowledged.
func Seen(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, true)
}

func listHandler(svc notifications.Service, logg *logger.Logger, seen bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		userID, isAdmin, authErr := actor(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		params := pagination.FromQuery(r.URL.Query())

		var (
			result *notifications.ListResult
			err    error
		)
		if seen {
			result, err = svc.GetSeen(r.Context(), userID, isAdmin, params)
		} else {
			result, err = svc.GetUnseen(r.Context(), userID, isAdmin, params)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, notifications.NewNotificationResponses(result.Items), result.Page, "")
	}
}

// Detail loads one notification by id.
func Detail(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "notificationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "notification id must be a valid uuid"))
			return
		}

		notification, svcErr := svc.Get(r.Context(), id)
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}

		responses.WriteSuccess(w, notifications.NewNotificationResponse(*notification), "")
	}
}

// MarkSeen acknowledges one notification for the acting user. Repeated calls
// answer with the already-seen message instead of failing.
func MarkSeen(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "notificationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "notification id must be a valid uuid"))
			return
		}

		userID, isAdmin, authErr := actor(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		result, svcErr := svc.MarkAsSeen(r.Context(), id, userID, isAdmin)
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}

		message := "Notification marked as seen"
		if result.AlreadySeen {
			message = "Notification already marked as seen by this user"
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, notifications.NewNotificationResponse(*result.Notification), message)
	}
}

// MarkAllSeen acknowledges every notification addressed to the acting user.
func MarkAllSeen(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		userID, isAdmin, authErr := actor(r)
		if authErr != nil {
			responses.WriteError(r.Context(), logg, w, authErr)
			return
		}

		marked, svcErr := svc.MarkAllAsSeen(r.Context(), userID, isAdmin)
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int{"marked": marked}, "All notifications marked as seen")
	}
}
