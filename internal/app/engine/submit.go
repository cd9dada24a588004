// internal/app/engine/submit.go
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// SubmitContribution records a participant's work for the contribution
// phase. One contribution per member; resubmission is rejected, never
// merged or overwritten.
func (e *Engine) SubmitContribution(ctx context.Context, meetingID, identity, text string, files []string) error {
	rec, err := e.lookup(meetingID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.m.Phase != models.PhaseContribution {
		return ErrWrongPhase
	}
	gi, ok := groupIndexOf(rec.m.Groups, identity)
	if !ok {
		return ErrNotInGroup
	}
	if _, exists := rec.m.Groups[gi].Contributions[identity]; exists {
		return ErrAlreadySubmitted
	}

	next := rec.m.Clone()
	if next.Groups[gi].Contributions == nil {
		next.Groups[gi].Contributions = map[string]models.Contribution{}
	}
	next.Groups[gi].Contributions[identity] = models.Contribution{
		Text:        text,
		Files:       append([]string(nil), files...),
		SubmittedAt: e.clock.Now(),
	}
	if err := e.persist(ctx, rec, next); err != nil {
		return err
	}

	e.metrics.Contribution()
	e.log.Info("contribution recorded",
		zap.String("meeting_id", meetingID),
		zap.String("participant", identity),
		zap.Int("files", len(files)))
	return nil
}

// SubmitRanking records a participant's full ranking of their group. The
// ranking must be an exact permutation of the group's members with ranks
// 1..N. One ranking per member.
func (e *Engine) SubmitRanking(ctx context.Context, meetingID, identity string, ranking models.Ranking) error {
	rec, err := e.lookup(meetingID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.m.Phase != models.PhaseRanking {
		return ErrWrongPhase
	}
	gi, ok := groupIndexOf(rec.m.Groups, identity)
	if !ok {
		return ErrNotInGroup
	}
	if _, exists := rec.m.Groups[gi].Rankings[identity]; exists {
		return ErrAlreadySubmitted
	}
	if !validRanking(rec.m.Groups[gi].Members, ranking) {
		return ErrInvalidRanking
	}

	next := rec.m.Clone()
	if next.Groups[gi].Rankings == nil {
		next.Groups[gi].Rankings = map[string]models.Ranking{}
	}
	next.Groups[gi].Rankings[identity] = ranking.Clone()
	if err := e.persist(ctx, rec, next); err != nil {
		return err
	}

	e.metrics.Ranking()
	e.log.Info("ranking recorded",
		zap.String("meeting_id", meetingID),
		zap.String("participant", identity))
	return nil
}

// groupIndexOf returns the index of the group identity belongs to.
func groupIndexOf(groups []models.Group, identity string) (int, bool) {
	for i, g := range groups {
		if g.HasMember(identity) {
			return i, true
		}
	}
	return 0, false
}

// validRanking reports whether ranking is an exact permutation of
// members: every member ranked exactly once, ranks 1..N with no gaps or
// duplicates, nobody from outside the group.
func validRanking(members []string, ranking models.Ranking) bool {
	n := len(members)
	if len(ranking) != n {
		return false
	}
	inGroup := make(map[string]bool, n)
	for _, m := range members {
		inGroup[m] = true
	}
	seenRank := make([]bool, n+1)
	seenParticipant := make(map[string]bool, n)
	for _, e := range ranking {
		if e.Rank < 1 || e.Rank > n || seenRank[e.Rank] {
			return false
		}
		if !inGroup[e.Participant] || seenParticipant[e.Participant] {
			return false
		}
		seenRank[e.Rank] = true
		seenParticipant[e.Participant] = true
	}
	return true
}
