// internal/app/features/meetings/routes.go
package meetings

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Read views are open to any signed-in caller.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST / VIEW
		pr.Get("/", h.HandleListMeetings)
		pr.Get("/{id}", h.HandleGetMeeting)

		// LIFECYCLE (participant-triggered)
		pr.Post("/{id}/signup", h.HandleSignUp)
		pr.Post("/{id}/advance", h.HandleAdvance)

		// SUBMISSIONS
		pr.Post("/{id}/contributions", h.HandleSubmitContribution)
		pr.Post("/{id}/rankings", h.HandleSubmitRanking)
	})

	// Admin-only lifecycle controls.
	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireRole(auth.RoleAdmin))

		ar.Post("/", h.HandleCreateMeeting)
		ar.Post("/{id}/force-advance", h.HandleForceAdvance)
	})

	return r
}
