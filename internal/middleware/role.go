package middleware

import (
	"context"
	"net/http"
	"strings"

	"buildboard-api/pkg/apierror"
)

// Role selects which board view a caller acts in. It is a view selector, not
// an identity: any caller may claim either role.
type Role string

const (
	RoleRequester Role = "requester"
	RoleBuilder   Role = "builder"
)

// RoleHeader is the request header carrying the caller's role.
const RoleHeader = "X-Board-Role"

// RoleKey is the context key for the caller's role.
const RoleKey contextKey = "board_role"

// ParseRole maps a header value to a role. Empty selects the requester view.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleRequester:
		return RoleRequester, true
	case RoleBuilder:
		return RoleBuilder, true
	}
	return "", false
}

// SelectRole reads RoleHeader into the request context. Unknown roles are
// rejected with 400.
func SelectRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := ParseRole(r.Header.Get(RoleHeader))
		if !ok {
			writeError(w, apierror.BadRequest("Unknown role; use requester or builder"))
			return
		}

		ctx := context.WithValue(r.Context(), RoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests not made in role with 403.
func RequireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetRole(r.Context()) != role {
				writeError(w, apierror.Forbidden("This action is only available in the "+string(role)+" view"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetRole retrieves the caller's role from context, defaulting to requester.
func GetRole(ctx context.Context) Role {
	if role, ok := ctx.Value(RoleKey).(Role); ok {
		return role
	}
	return RoleRequester
}
