// internal/domain/models/meeting.go
package models

import "time"

// Phase is the lifecycle phase of a consensus meeting. Phases only ever
// move forward: signup -> contribution -> ranking -> finalized.
type Phase string

const (
	PhaseSignup       Phase = "signup"
	PhaseContribution Phase = "contribution"
	PhaseRanking      Phase = "ranking"
	PhaseFinalized    Phase = "finalized"
)

// Next returns the phase that follows p, or PhaseFinalized if p is terminal.
func (p Phase) Next() Phase {
	switch p {
	case PhaseSignup:
		return PhaseContribution
	case PhaseContribution:
		return PhaseRanking
	case PhaseRanking:
		return PhaseFinalized
	default:
		return PhaseFinalized
	}
}

// Meeting is one recurring consensus meeting: a signup roster, a fixed
// group partition once contribution opens, and per-group submissions.
//
// NOTE:
//   - Participants is append-only while Phase is signup and frozen after.
//   - Groups is empty until the contribution phase begins, then fixed.
//   - Payouts records reward credits that have already landed, keyed by
//     "identity|token", so a retried finalize never pays twice.
type Meeting struct {
	ID    string `bson:"_id" json:"id"`
	Phase Phase  `bson:"phase" json:"phase"`

	StartTime      time.Time `bson:"start_time" json:"start_time"`
	PhaseStartTime time.Time `bson:"phase_start_time" json:"phase_start_time"`
	// PhaseEndTime is zero once the meeting is finalized (no expiry).
	PhaseEndTime time.Time `bson:"phase_end_time" json:"phase_end_time"`

	Participants []string `bson:"participants" json:"participants"`
	Groups       []Group  `bson:"groups" json:"groups"`

	Payouts map[string]int64 `bson:"payouts" json:"-"`

	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Group is one fixed set of 3-6 meeting participants with their
// contributions and rankings. Entries are only ever added, never
// overwritten or removed.
type Group struct {
	Members       []string                `bson:"members" json:"members"`
	Contributions map[string]Contribution `bson:"contributions" json:"contributions"`
	Rankings      map[string]Ranking      `bson:"rankings" json:"rankings"`

	// ConsensusEvaluated is set the first time finalize runs for the
	// meeting; ConsensusReached and CanonicalOrder are frozen from then on.
	ConsensusEvaluated bool     `bson:"consensus_evaluated" json:"-"`
	ConsensusReached   bool     `bson:"consensus_reached" json:"consensus_reached"`
	CanonicalOrder     []string `bson:"canonical_order,omitempty" json:"canonical_order,omitempty"`
}

// HasMember reports whether identity belongs to the group.
func (g Group) HasMember(identity string) bool {
	for _, m := range g.Members {
		if m == identity {
			return true
		}
	}
	return false
}

// Contribution is one member's submitted work for the contribution phase.
// File entries are opaque references resolved by an external blob store.
type Contribution struct {
	Text        string    `bson:"text" json:"text"`
	Files       []string  `bson:"files,omitempty" json:"files,omitempty"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
}

// RankEntry places one participant at one rank position (1-based).
type RankEntry struct {
	Participant string `bson:"participant" json:"participant"`
	Rank        int    `bson:"rank" json:"rank"`
}

// Ranking is one member's full ranking of their group: an exact
// permutation of the group's members with ranks 1..N.
type Ranking []RankEntry

// OrderedParticipants returns the ranked participants in rank order
// (rank 1 first). The ranking must already be validated as a permutation.
func (r Ranking) OrderedParticipants() []string {
	out := make([]string, len(r))
	for _, e := range r {
		if e.Rank >= 1 && e.Rank <= len(r) {
			out[e.Rank-1] = e.Participant
		}
	}
	return out
}

// Clone returns a deep copy of the ranking.
func (r Ranking) Clone() Ranking {
	if r == nil {
		return nil
	}
	out := make(Ranking, len(r))
	copy(out, r)
	return out
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := g
	out.Members = append([]string(nil), g.Members...)
	out.CanonicalOrder = append([]string(nil), g.CanonicalOrder...)
	if g.Contributions != nil {
		out.Contributions = make(map[string]Contribution, len(g.Contributions))
		for k, v := range g.Contributions {
			v.Files = append([]string(nil), v.Files...)
			out.Contributions[k] = v
		}
	}
	if g.Rankings != nil {
		out.Rankings = make(map[string]Ranking, len(g.Rankings))
		for k, v := range g.Rankings {
			out.Rankings[k] = v.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the meeting. The engine mutates clones and
// publishes them only after a successful save, so readers never observe a
// half-applied operation.
func (m Meeting) Clone() Meeting {
	out := m
	out.Participants = append([]string(nil), m.Participants...)
	if m.Groups != nil {
		out.Groups = make([]Group, len(m.Groups))
		for i, g := range m.Groups {
			out.Groups[i] = g.Clone()
		}
	}
	if m.Payouts != nil {
		out.Payouts = make(map[string]int64, len(m.Payouts))
		for k, v := range m.Payouts {
			out.Payouts[k] = v
		}
	}
	return out
}
