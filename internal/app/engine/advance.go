// internal/app/engine/advance.go
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/domain/consensus"
	"github.com/dalemusser/agorahub/internal/domain/models"
	"github.com/dalemusser/agorahub/internal/domain/rewards"
)

// AdvancePhase moves a meeting to its next phase once the current phase
// has expired. Only enrolled participants may trigger it. Leaving signup
// additionally requires the minimum roster; short of that the meeting
// stalls until an admin force-advances it.
func (e *Engine) AdvancePhase(ctx context.Context, meetingID, caller string) (models.Meeting, error) {
	rec, err := e.lookup(meetingID)
	if err != nil {
		return models.Meeting{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.m.Phase == models.PhaseFinalized {
		return models.Meeting{}, ErrAlreadyFinalized
	}
	enrolled := false
	for _, p := range rec.m.Participants {
		if p == caller {
			enrolled = true
			break
		}
	}
	if !enrolled {
		return models.Meeting{}, ErrNotAParticipant
	}
	if e.clock.Now().Before(rec.m.PhaseEndTime) {
		return models.Meeting{}, ErrPhaseNotExpired
	}
	if rec.m.Phase == models.PhaseSignup && len(rec.m.Participants) < MinParticipants {
		return models.Meeting{}, ErrInsufficientParticipants
	}

	return e.transition(ctx, rec, caller)
}

// ForceAdvancePhase is the admin override: same transition semantics as
// AdvancePhase, but it bypasses the expiry and minimum-roster gates. It
// still refuses to touch a finalized meeting.
func (e *Engine) ForceAdvancePhase(ctx context.Context, meetingID, caller string) (models.Meeting, error) {
	rec, err := e.lookup(meetingID)
	if err != nil {
		return models.Meeting{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.m.Phase == models.PhaseFinalized {
		return models.Meeting{}, ErrAlreadyFinalized
	}
	return e.transition(ctx, rec, caller)
}

// transition performs the single forward step for the record's current
// phase. Caller holds the record's write lock.
func (e *Engine) transition(ctx context.Context, rec *record, caller string) (models.Meeting, error) {
	from := rec.m.Phase
	next := rec.m.Clone()
	now := e.clock.Now()

	switch from {
	case models.PhaseSignup:
		groups, err := e.roster.AssignGroups(ctx, next.ID, append([]string(nil), next.Participants...))
		if err != nil {
			return models.Meeting{}, collabErr("roster", err)
		}
		if err := validatePartition(next.Participants, groups); err != nil {
			return models.Meeting{}, collabErr("roster", err)
		}
		next.Groups = groups

	case models.PhaseContribution:
		// Ranking opens on the groups as they stand; nothing extra to do.

	case models.PhaseRanking:
		if err := e.finalize(ctx, rec, &next); err != nil {
			return models.Meeting{}, err
		}
	}

	entered := from.Next()
	next.Phase = entered
	next.PhaseStartTime = now
	if d := e.durations.For(entered); d > 0 {
		next.PhaseEndTime = now.Add(d)
	} else {
		next.PhaseEndTime = time.Time{} // finalized: no expiry
	}

	if err := e.persist(ctx, rec, next); err != nil {
		return models.Meeting{}, err
	}

	e.metrics.PhaseEntered(entered)
	e.log.Info("phase advanced",
		zap.String("meeting_id", next.ID),
		zap.String("from", string(from)),
		zap.String("to", string(entered)),
		zap.String("caller", caller))
	return next.Clone(), nil
}

// finalize evaluates consensus per group (exactly once; results freeze on
// the first pass) and pushes every owed credit to the ledger. Credits
// that land are recorded in next.Payouts immediately, and that partial
// bookkeeping is persisted and published even when a later credit fails,
// so a retried advance resumes where this one stopped instead of paying
// anyone twice.
func (e *Engine) finalize(ctx context.Context, rec *record, next *models.Meeting) error {
	for i := range next.Groups {
		g := &next.Groups[i]
		if g.ConsensusEvaluated {
			continue
		}
		res := consensus.Detect(g.Members, g.Rankings)
		g.ConsensusEvaluated = true
		g.ConsensusReached = res.Reached
		if res.Reached {
			g.CanonicalOrder = res.Canonical.OrderedParticipants()
		}
		e.metrics.GroupFinalized(res.Reached)
	}

	if next.Payouts == nil {
		next.Payouts = map[string]int64{}
	}
	for _, g := range next.Groups {
		for _, c := range rewards.ForGroup(g) {
			key := payoutKey(c.Participant, c.Token)
			if _, paid := next.Payouts[key]; paid {
				continue
			}
			if err := e.credit(ctx, next.ID, c); err != nil {
				// Keep what landed: publish the partial payout markers and
				// leave the meeting in ranking so the advance can be retried.
				rec.m = *next
				if saveErr := e.store.Save(ctx, next.Clone()); saveErr != nil {
					e.log.Error("failed to persist partial payouts",
						zap.String("meeting_id", next.ID), zap.Error(saveErr))
				}
				return collabErr("ledger", err)
			}
			next.Payouts[key] = c.Amount
			e.metrics.TokensCredited(c.Token, c.Amount)
		}
	}
	return nil
}

func (e *Engine) credit(ctx context.Context, meetingID string, c rewards.Credit) error {
	switch c.Token {
	case models.TokenREP:
		return e.ledger.CreditREP(ctx, meetingID, c.Participant, c.Amount)
	case models.TokenPHIL:
		return e.ledger.CreditPHIL(ctx, meetingID, c.Participant, c.Amount)
	default:
		return fmt.Errorf("unknown token %q", c.Token)
	}
}

// validatePartition checks that the roster's groups are an exact
// partition of the participant set: everyone placed, no strangers, no
// duplicates, no empty groups.
func validatePartition(participants []string, groups []models.Group) error {
	expected := make(map[string]bool, len(participants))
	for _, p := range participants {
		expected[p] = false
	}
	for gi, g := range groups {
		if len(g.Members) == 0 {
			return fmt.Errorf("group %d is empty", gi)
		}
		for _, m := range g.Members {
			seen, ok := expected[m]
			if !ok {
				return fmt.Errorf("group %d contains non-participant %q", gi, m)
			}
			if seen {
				return fmt.Errorf("participant %q assigned to more than one group", m)
			}
			expected[m] = true
		}
	}
	for p, seen := range expected {
		if !seen {
			return fmt.Errorf("participant %q not assigned to any group", p)
		}
	}
	return nil
}
