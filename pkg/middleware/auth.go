package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcreations/storefront/pkg/auth"
	"github.com/mcreations/storefront/pkg/response"
	"github.com/mcreations/storefront/pkg/session"
)

type userKey struct{}
type roleKey struct{}

// Identify resolves the requesting user from either the server-side session
// (browser flows) or a Bearer JWT (API clients) and stores id/role in the
// request context. It never rejects — pair it with RequireUser or
// rbac.HasRole for enforcement.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, role, ok := identify(r); ok {
			ctx := context.WithValue(r.Context(), userKey{}, id)
			ctx = context.WithValue(ctx, roleKey{}, role)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func identify(r *http.Request) (uint, string, bool) {
	sess := session.FromCtx(r)
	if id, ok := sess.GetUint("user_id"); ok && id != 0 {
		role, _ := sess.GetString("role")
		return id, role, true
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		return 0, "", false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return 0, "", false
	}
	return claims.UserID, claims.Role, true
}

// RequireUser rejects unauthenticated requests with a 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromCtx(r); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromCtx returns the authenticated user's id, if any.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userKey{}).(uint)
	return id, ok && id != 0
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok && role != ""
}
