// internal/app/features/balances/handler.go
package balances

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	ledgerstore "github.com/dalemusser/agorahub/internal/app/store/ledger"
	"github.com/dalemusser/agorahub/internal/app/system/auth"
	"github.com/dalemusser/agorahub/internal/app/system/httpjson"
	"github.com/dalemusser/agorahub/internal/app/system/timeouts"
)

// Handler serves the read-only token balance views the presentation
// layer renders.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandleGetBalance returns one identity's REP/PHIL balances. Members may
// only view their own; admins may view anyone's.
func (h *Handler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	identity := chi.URLParam(r, "identity")

	if identity != u.ID && !u.IsAdmin() {
		httpjson.Respond(w, http.StatusForbidden,
			httpjson.ErrorBody{Error: "forbidden", Message: "you may only view your own balance"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	balance, err := ledgerstore.New(h.DB).GetBalance(ctx, identity)
	if err != nil {
		h.Log.Error("balance lookup failed", zap.String("identity", identity), zap.Error(err))
		httpjson.Respond(w, http.StatusInternalServerError,
			httpjson.ErrorBody{Error: "internal_error", Message: "balance lookup failed"})
		return
	}

	httpjson.Respond(w, http.StatusOK, balance)
}
