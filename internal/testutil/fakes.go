// internal/testutil/fakes.go
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// FakeClock is a settable engine.Clock for phase-expiry tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeGate is a MembershipGate backed by a set of approved identities.
type FakeGate struct {
	mu       sync.Mutex
	approved map[string]bool
	Err      error // returned by every call when set
}

func NewFakeGate(approved ...string) *FakeGate {
	g := &FakeGate{approved: make(map[string]bool, len(approved))}
	for _, id := range approved {
		g.approved[id] = true
	}
	return g
}

// Approve marks additional identities as approved members.
func (g *FakeGate) Approve(identities ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range identities {
		g.approved[id] = true
	}
}

func (g *FakeGate) IsApprovedMember(ctx context.Context, identity string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return false, g.Err
	}
	return g.approved[identity], nil
}

// MemStore is an in-memory engine.Store.
type MemStore struct {
	mu       sync.Mutex
	meetings map[string]models.Meeting
	SaveErr  error // returned by Save when set
}

func NewMemStore() *MemStore {
	return &MemStore{meetings: make(map[string]models.Meeting)}
}

func (s *MemStore) Save(ctx context.Context, m models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.meetings[m.ID] = m.Clone()
	return nil
}

func (s *MemStore) LoadAll(ctx context.Context) ([]models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		out = append(out, m.Clone())
	}
	return out, nil
}

// Saved returns the persisted snapshot for a meeting id, if any.
func (s *MemStore) Saved(id string) (models.Meeting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok {
		return models.Meeting{}, false
	}
	return m.Clone(), true
}

// FakeLedger records reward credits and can be told to fail, for
// exercising finalize retry semantics.
type FakeLedger struct {
	mu    sync.Mutex
	rep   map[string]int64
	phil  map[string]int64
	calls map[string]int // credits issued per "identity|token"
	Err   error          // returned by every credit when set
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		rep:   make(map[string]int64),
		phil:  make(map[string]int64),
		calls: make(map[string]int),
	}
}

func (l *FakeLedger) CreditREP(ctx context.Context, meetingID, identity string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.rep[identity] += amount
	l.calls[identity+"|REP"]++
	return nil
}

func (l *FakeLedger) CreditPHIL(ctx context.Context, meetingID, identity string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.phil[identity] += amount
	l.calls[identity+"|PHIL"]++
	return nil
}

// SetErr makes every subsequent credit fail (nil heals the ledger).
func (l *FakeLedger) SetErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Err = err
}

// REP returns the accumulated REP for an identity.
func (l *FakeLedger) REP(identity string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rep[identity]
}

// PHIL returns the accumulated PHIL for an identity.
func (l *FakeLedger) PHIL(identity string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phil[identity]
}

// Calls returns how many credits were issued for an identity and token,
// e.g. Calls("alice", "REP").
func (l *FakeLedger) Calls(identity, token string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[identity+"|"+token]
}

// TotalREP sums all REP credited across identities.
func (l *FakeLedger) TotalREP() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total int64
	for _, v := range l.rep {
		total += v
	}
	return total
}

// TotalPHIL sums all PHIL credited across identities.
func (l *FakeLedger) TotalPHIL() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total int64
	for _, v := range l.phil {
		total += v
	}
	return total
}
