package middleware

import (
	"net/http"

	"github.com/waiyanphyo/shopdesk-backend/api/responses"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/waiyanphyo/shopdesk-backend/pkg/errors"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
)

// RequireBackoffice rejects requests whose actor is not an admin or staff user.
func RequireBackoffice(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.Role(RoleFromContext(r.Context()))
			if !role.IsBackoffice() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
