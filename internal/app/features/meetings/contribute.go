// internal/app/features/meetings/contribute.go
package meetings

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
	"github.com/dalemusser/agorahub/internal/app/system/httpjson"
	"github.com/dalemusser/agorahub/internal/app/system/sanitize"
	"github.com/dalemusser/agorahub/internal/app/system/timeouts"
)

// contributionRequest is the body for POST /meetings/{id}/contributions.
// Files are opaque references into the external blob store.
type contributionRequest struct {
	Text  string   `json:"text"`
	Files []string `json:"files,omitempty"`
}

// HandleSubmitContribution records the caller's contribution for the
// contribution phase. The text is sanitized before it reaches the engine.
func (h *Handler) HandleSubmitContribution(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	meetingID := chi.URLParam(r, "id")

	var req contributionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	text := sanitize.Contribution(req.Text)
	if strings.TrimSpace(text) == "" && len(req.Files) == 0 {
		httpjson.BadRequest(w, "contribution must include text or files")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Engine.SubmitContribution(ctx, meetingID, u.ID, text, req.Files); err != nil {
		h.Log.Debug("contribution rejected",
			zap.String("meeting_id", meetingID),
			zap.String("participant", u.ID),
			zap.Error(err))
		httpjson.EngineError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusNoContent, nil)
}
