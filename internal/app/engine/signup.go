// internal/app/engine/signup.go
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// SignUp enrolls a participant in a meeting that is still in its signup
// phase. Signup stays open until the phase actually advances, even past
// the nominal end time (advance is lazy, see the package comment).
func (e *Engine) SignUp(ctx context.Context, meetingID, identity string) error {
	rec, err := e.lookup(meetingID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.m.Phase != models.PhaseSignup {
		return ErrPhaseClosed
	}
	for _, p := range rec.m.Participants {
		if p == identity {
			return ErrAlreadyEnrolled
		}
	}

	approved, err := e.gate.IsApprovedMember(ctx, identity)
	if err != nil {
		return collabErr("membership", err)
	}
	if !approved {
		return ErrNotAMember
	}

	next := rec.m.Clone()
	next.Participants = append(next.Participants, identity)
	if err := e.persist(ctx, rec, next); err != nil {
		return err
	}

	e.metrics.SignUp()
	e.log.Info("participant signed up",
		zap.String("meeting_id", meetingID),
		zap.String("participant", identity),
		zap.Int("participants", len(next.Participants)))
	return nil
}
