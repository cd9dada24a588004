// internal/app/engine/engine.go

// Package engine is the meeting lifecycle core: the phase state machine,
// signup/contribution/ranking recording, phase-advance authorization, and
// the consensus/reward computation at finalize.
//
// The engine holds every meeting in an in-memory arena indexed by meeting
// id. Each record carries its own lock, so mutating operations on one
// meeting are fully serialized while other meetings proceed untouched.
// There is no background scheduler: a phase past its end time stays put
// until the first enrolled participant calls AdvancePhase, which pays the
// (idempotent) cost of the transition.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/system/metrics"
	"github.com/dalemusser/agorahub/internal/domain/models"
)

// MinParticipants is the smallest roster allowed to leave signup without
// an admin force-advance.
const MinParticipants = 3

// Clock supplies the current time for phase-expiry checks.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// MembershipGate answers whether an identity is an approved, non-suspended
// member of the fronting application.
type MembershipGate interface {
	IsApprovedMember(ctx context.Context, identity string) (bool, error)
}

// GroupRoster partitions the frozen participant set into groups when the
// contribution phase begins. It is invoked exactly once per meeting.
type GroupRoster interface {
	AssignGroups(ctx context.Context, meetingID string, participants []string) ([]models.Group, error)
}

// RewardLedger credits reward tokens to participants. Implementations are
// expected to be idempotent per (meeting, identity, token); the engine's
// own payout bookkeeping additionally avoids re-issuing credits it knows
// have landed.
type RewardLedger interface {
	CreditREP(ctx context.Context, meetingID, identity string, amount int64) error
	CreditPHIL(ctx context.Context, meetingID, identity string, amount int64) error
}

// Store persists meeting snapshots. The engine saves after every mutation
// and loads everything back at startup.
type Store interface {
	Save(ctx context.Context, m models.Meeting) error
	LoadAll(ctx context.Context) ([]models.Meeting, error)
}

// Durations are the fixed per-phase lengths. Finalized has no expiry.
type Durations struct {
	Signup       time.Duration
	Contribution time.Duration
	Ranking      time.Duration
}

// DefaultDurations returns the standard phase lengths: 24h signup,
// 5 days contribution, 24h ranking.
func DefaultDurations() Durations {
	return Durations{
		Signup:       24 * time.Hour,
		Contribution: 5 * 24 * time.Hour,
		Ranking:      24 * time.Hour,
	}
}

// For returns the duration of the given phase (zero for finalized).
func (d Durations) For(p models.Phase) time.Duration {
	switch p {
	case models.PhaseSignup:
		return d.Signup
	case models.PhaseContribution:
		return d.Contribution
	case models.PhaseRanking:
		return d.Ranking
	default:
		return 0
	}
}

// Config carries the engine's collaborators. Store, Gate, Roster, and
// Ledger are required; the rest default sensibly.
type Config struct {
	Store     Store
	Gate      MembershipGate
	Roster    GroupRoster
	Ledger    RewardLedger
	Clock     Clock
	Durations Durations
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Engine owns the meeting arena and implements every lifecycle operation.
type Engine struct {
	mu       sync.RWMutex
	meetings map[string]*record

	store     Store
	gate      MembershipGate
	roster    GroupRoster
	ledger    RewardLedger
	clock     Clock
	durations Durations
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// record is one meeting plus its mutation lock. Mutators clone the
// meeting, apply the change, persist the clone, and only then publish it,
// so readers holding the RLock always see a consistent snapshot.
type record struct {
	mu sync.RWMutex
	m  models.Meeting
}

// New constructs an Engine. Call Restore before serving traffic to
// rebuild the arena from the store.
func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Durations == (Durations{}) {
		cfg.Durations = DefaultDurations()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		meetings:  make(map[string]*record),
		store:     cfg.Store,
		gate:      cfg.Gate,
		roster:    cfg.Roster,
		ledger:    cfg.Ledger,
		clock:     cfg.Clock,
		durations: cfg.Durations,
		log:       cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

// Restore loads all persisted meetings into the arena. Meetings already
// in memory are left alone.
func (e *Engine) Restore(ctx context.Context) error {
	loaded, err := e.store.LoadAll(ctx)
	if err != nil {
		return collabErr("store", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	restored := 0
	for _, m := range loaded {
		if _, ok := e.meetings[m.ID]; ok {
			continue
		}
		e.meetings[m.ID] = &record{m: m.Clone()}
		restored++
	}
	e.log.Info("meeting arena restored", zap.Int("meetings", restored))
	return nil
}

// lookup returns the record for a meeting id.
func (e *Engine) lookup(id string) (*record, error) {
	e.mu.RLock()
	rec, ok := e.meetings[id]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrMeetingNotFound
	}
	return rec, nil
}

// GetMeeting returns a consistent deep-copied snapshot of one meeting.
func (e *Engine) GetMeeting(id string) (models.Meeting, error) {
	rec, err := e.lookup(id)
	if err != nil {
		return models.Meeting{}, err
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return rec.m.Clone(), nil
}

// ListMeetings returns snapshots of every meeting, newest first.
func (e *Engine) ListMeetings() []models.Meeting {
	e.mu.RLock()
	recs := make([]*record, 0, len(e.meetings))
	for _, rec := range e.meetings {
		recs = append(recs, rec)
	}
	e.mu.RUnlock()

	out := make([]models.Meeting, 0, len(recs))
	for _, rec := range recs {
		rec.mu.RLock()
		out = append(out, rec.m.Clone())
		rec.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// persist saves a mutated clone and publishes it into the record on
// success. On failure the previous snapshot stays visible and the error
// surfaces as a store CollaboratorError.
func (e *Engine) persist(ctx context.Context, rec *record, next models.Meeting) error {
	next.UpdatedAt = e.clock.Now()
	if err := e.store.Save(ctx, next); err != nil {
		return collabErr("store", err)
	}
	rec.m = next
	return nil
}

func payoutKey(identity string, token models.Token) string {
	return identity + "|" + string(token)
}
