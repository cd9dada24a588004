// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON request/response conventions for the
// API: one decode helper with a body size cap, one respond helper, and
// the mapping from engine error kinds to HTTP statuses and stable error
// codes. Every failure the API returns is a distinguishable typed code,
// never a generic fault.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/agorahub/internal/app/engine"
)

// maxBodyBytes caps request bodies; contributions are text plus file
// references, so a megabyte is generous.
const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every API failure.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Decode parses the request body into v, rejecting unknown fields and
// oversized bodies.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// BadRequest writes a 400 with the bad_request code.
func BadRequest(w http.ResponseWriter, message string) {
	Respond(w, http.StatusBadRequest, ErrorBody{Error: "bad_request", Message: message})
}

// EngineError maps an engine failure to its HTTP status and stable code.
func EngineError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	Respond(w, status, ErrorBody{Error: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	var collab *engine.CollaboratorError
	if errors.As(err, &collab) {
		return http.StatusBadGateway, "collaborator_failure"
	}

	switch {
	case errors.Is(err, engine.ErrMeetingNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, engine.ErrDuplicateMeetingID):
		return http.StatusConflict, "duplicate_id"
	case errors.Is(err, engine.ErrPhaseClosed):
		return http.StatusConflict, "phase_closed"
	case errors.Is(err, engine.ErrWrongPhase):
		return http.StatusConflict, "wrong_phase"
	case errors.Is(err, engine.ErrNotAMember):
		return http.StatusForbidden, "not_a_member"
	case errors.Is(err, engine.ErrAlreadyEnrolled):
		return http.StatusConflict, "already_enrolled"
	case errors.Is(err, engine.ErrNotAParticipant):
		return http.StatusForbidden, "not_a_participant"
	case errors.Is(err, engine.ErrInsufficientParticipants):
		return http.StatusConflict, "insufficient_participants"
	case errors.Is(err, engine.ErrPhaseNotExpired):
		return http.StatusConflict, "phase_not_expired"
	case errors.Is(err, engine.ErrAlreadyFinalized):
		return http.StatusConflict, "already_finalized"
	case errors.Is(err, engine.ErrNotInGroup):
		return http.StatusForbidden, "not_in_group"
	case errors.Is(err, engine.ErrAlreadySubmitted):
		return http.StatusConflict, "already_submitted"
	case errors.Is(err, engine.ErrInvalidRanking):
		return http.StatusUnprocessableEntity, "invalid_ranking"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
