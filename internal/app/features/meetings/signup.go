// internal/app/features/meetings/signup.go
package meetings

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
	"github.com/dalemusser/agorahub/internal/app/system/httpjson"
	"github.com/dalemusser/agorahub/internal/app/system/timeouts"
)

// HandleSignUp enrolls the calling user in a meeting's signup roster.
// Participants can only sign themselves up; there is no signup on behalf
// of someone else.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	meetingID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Engine.SignUp(ctx, meetingID, u.ID); err != nil {
		h.Log.Debug("signup rejected",
			zap.String("meeting_id", meetingID),
			zap.String("participant", u.ID),
			zap.Error(err))
		httpjson.EngineError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusNoContent, nil)
}
