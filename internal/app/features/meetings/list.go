// internal/app/features/meetings/list.go
package meetings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/agorahub/internal/app/system/httpjson"
	"github.com/dalemusser/agorahub/internal/domain/models"
)

// meetingListResponse wraps the list view.
type meetingListResponse struct {
	Meetings []models.Meeting `json:"meetings"`
}

// HandleListMeetings returns snapshots of every meeting, newest first.
func (h *Handler) HandleListMeetings(w http.ResponseWriter, r *http.Request) {
	httpjson.Respond(w, http.StatusOK, meetingListResponse{Meetings: h.Engine.ListMeetings()})
}

// HandleGetMeeting returns one meeting's consistent snapshot: phase,
// timestamps, participants, and per-group contributions, rankings, and
// consensus flags.
func (h *Handler) HandleGetMeeting(w http.ResponseWriter, r *http.Request) {
	m, err := h.Engine.GetMeeting(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.EngineError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, m)
}
