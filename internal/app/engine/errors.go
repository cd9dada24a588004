// internal/app/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Validation failures are caller/state mismatches, returned synchronously
// and never retried by the engine.
var (
	ErrDuplicateMeetingID = errors.New("a meeting with this id already exists")
	ErrMeetingNotFound    = errors.New("meeting not found")

	ErrPhaseClosed = errors.New("the signup phase is closed")
	ErrWrongPhase  = errors.New("operation is not valid in the current phase")

	ErrNotAMember      = errors.New("identity is not an approved member")
	ErrAlreadyEnrolled = errors.New("participant is already signed up")
	ErrNotAParticipant = errors.New("caller is not enrolled in this meeting")

	ErrInsufficientParticipants = errors.New("not enough participants to leave signup")
	ErrPhaseNotExpired          = errors.New("the current phase has not reached its end time")
	ErrAlreadyFinalized         = errors.New("meeting is already finalized")

	ErrNotInGroup       = errors.New("participant does not belong to a group in this meeting")
	ErrAlreadySubmitted = errors.New("participant has already submitted")
	ErrInvalidRanking   = errors.New("ranking is not an exact permutation of the group members")
)

// CollaboratorError reports a failure in one of the engine's external
// collaborators (roster, ledger, membership gate, store). These are the
// only failures worth retrying; the engine leaves state so that a retry
// is safe.
type CollaboratorError struct {
	Collaborator string // "roster" | "ledger" | "membership" | "store"
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func collabErr(collaborator string, err error) error {
	return &CollaboratorError{Collaborator: collaborator, Err: err}
}
