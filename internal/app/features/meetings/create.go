// internal/app/features/meetings/create.go
package meetings

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
	"github.com/dalemusser/agorahub/internal/app/system/httpjson"
	"github.com/dalemusser/agorahub/internal/app/system/timeouts"
)

// createMeetingRequest is the body for POST /meetings. ID is optional;
// when omitted the engine generates one.
type createMeetingRequest struct {
	ID string `json:"id,omitempty"`
}

// HandleCreateMeeting opens a new meeting in the signup phase.
// Admin-only (enforced by the route middleware).
func (h *Handler) HandleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req createMeetingRequest
	if r.ContentLength != 0 {
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Engine.CreateMeeting(ctx, strings.TrimSpace(req.ID), u.ID)
	if err != nil {
		h.Log.Warn("create meeting failed", zap.String("id", req.ID), zap.Error(err))
		httpjson.EngineError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, m)
}
