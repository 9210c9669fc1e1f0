package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

// AuthRequired rejects requests without a valid access token carrying a
// tenant. Everything behind it can rely on session.FromContext.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			if _, err := session.FromContext(r.Context()); err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// RequireRole gates a subtree on a minimum role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := session.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if !sess.AtLeast(role) {
				response.Forbidden(w, "Insufficient role for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SupervisorOrAbove gates roster and approval endpoints.
var SupervisorOrAbove = RequireRole(session.RoleSupervisor)

// ManagerOrAbove gates payout, settlement and finalize endpoints.
var ManagerOrAbove = RequireRole(session.RoleManager)

// AdminOnly gates system administration endpoints.
var AdminOnly = RequireRole(session.RoleAdmin)
