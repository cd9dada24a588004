// internal/app/features/balances/routes.go
package balances

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{identity}", h.HandleGetBalance)
	})

	return r
}
