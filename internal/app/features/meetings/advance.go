// internal/app/features/meetings/advance.go
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

// HandleAdvance performs the natural phase advance: the first enrolled
// participant to call it after the phase end time pays the cost of the
// transition. The Long timeout covers a finalize that fans out ledger
// credits.
func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	meetingID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	m, err := h.Engine.AdvancePhase(ctx, meetingID, u.ID)
	if err != nil {
		h.Log.Debug("advance rejected",
			zap.String("meeting_id", meetingID),
			zap.String("caller", u.ID),
			zap.Error(err))
		httpjson.EngineError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, m)
}

// HandleForceAdvance is the admin override, bypassing the expiry and
// minimum-roster gates. Admin-only (route middleware).
func (h *Handler) HandleForceAdvance(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	meetingID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	m, err := h.Engine.ForceAdvancePhase(ctx, meetingID, u.ID)
	if err != nil {
		h.Log.Warn("force-advance rejected",
			zap.String("meeting_id", meetingID),
			zap.String("caller", u.ID),
			zap.Error(err))
		httpjson.EngineError(w, err)
		return
	}

	h.Log.Info("meeting force-advanced",
		zap.String("meeting_id", meetingID),
		zap.String("caller", u.ID),
		zap.String("phase", string(m.Phase)))
	httpjson.Respond(w, http.StatusOK, m)
}
