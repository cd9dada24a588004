// internal/app/engine/create.go
package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// CreateMeeting opens a new meeting in the signup phase. The caller is
// expected to be an admin (enforced at the HTTP layer). An empty id asks
// the engine to generate one.
func (e *Engine) CreateMeeting(ctx context.Context, id, createdBy string) (models.Meeting, error) {
	if id == "" {
		id = uuid.NewString()
	}

	now := e.clock.Now()
	m := models.Meeting{
		ID:             id,
		Phase:          models.PhaseSignup,
		StartTime:      now,
		PhaseStartTime: now,
		PhaseEndTime:   now.Add(e.durations.Signup),
		Participants:   []string{},
		Payouts:        map[string]int64{},
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Creation serializes on the arena lock: the duplicate check and the
	// insert must be one step.
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.meetings[id]; exists {
		return models.Meeting{}, ErrDuplicateMeetingID
	}
	if err := e.store.Save(ctx, m); err != nil {
		return models.Meeting{}, collabErr("store", err)
	}
	e.meetings[id] = &record{m: m}

	e.metrics.MeetingCreated()
	e.log.Info("meeting created",
		zap.String("meeting_id", id),
		zap.String("created_by", createdBy),
		zap.Time("signup_ends", m.PhaseEndTime))
	return m.Clone(), nil
}
