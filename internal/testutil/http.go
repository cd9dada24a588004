// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AdminUser returns a context identity with the admin role.
func AdminUser(id string) *auth.SessionUser {
	return &auth.SessionUser{ID: id, Name: "Test Admin", Role: auth.RoleAdmin}
}

// MemberUser returns a context identity with the member role.
func MemberUser(id string) *auth.SessionUser {
	return &auth.SessionUser{ID: id, Name: "Test Member", Role: "member"}
}

// WithUser injects a caller identity the way auth.LoadSessionUser would.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return auth.WithUser(r, u)
}
