// internal/app/features/meetings/rank.go
package meetings

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/system/auth"
	"github.com/dalemusser/agorahub/internal/app/system/httpjson"
	"github.com/dalemusser/agorahub/internal/app/system/timeouts"
	"github.com/dalemusser/agorahub/internal/domain/models"
)

// rankingRequest is the body for POST /meetings/{id}/rankings. The
// entries must be an exact permutation of the caller's group.
type rankingRequest struct {
	Ranking []rankingEntry `json:"ranking"`
}

type rankingEntry struct {
	Participant string `json:"participant"`
	Rank        int    `json:"rank"`
}

// HandleSubmitRanking records the caller's full ranking of their group.
func (h *Handler) HandleSubmitRanking(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	meetingID := chi.URLParam(r, "id")

	var req rankingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	if len(req.Ranking) == 0 {
		httpjson.BadRequest(w, "ranking is required")
		return
	}

	ranking := make(models.Ranking, len(req.Ranking))
	for i, e := range req.Ranking {
		ranking[i] = models.RankEntry{Participant: e.Participant, Rank: e.Rank}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Engine.SubmitRanking(ctx, meetingID, u.ID, ranking); err != nil {
		h.Log.Debug("ranking rejected",
			zap.String("meeting_id", meetingID),
			zap.String("participant", u.ID),
			zap.Error(err))
		httpjson.EngineError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusNoContent, nil)
}
