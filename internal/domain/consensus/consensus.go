// internal/domain/consensus/consensus.go

// Package consensus decides whether a group's submitted rankings agree.
//
// Rankings are clustered by exact sequence equality (same participant at
// the same rank position for every position). Consensus is reached when
// the largest cluster meets a group-size-dependent threshold, in which
// case the cluster's shared ranking is the canonical one.
package consensus

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// Result reports whether a group reached consensus and, if so, the
// canonical agreed ranking.
type Result struct {
	Reached   bool
	Canonical models.Ranking
}

// Threshold returns the number of identical submissions required for a
// group of n members to reach consensus. Sizes outside the expected 3-6
// range require unanimity.
func Threshold(n int) int {
	switch {
	case n == 4 || n == 5:
		return 3
	case n == 6:
		return 4
	default:
		return n
	}
}

// Detect evaluates a group's rankings against the consensus threshold for
// its size. Callers pass only rankings that have already been validated as
// permutations of the group's members.
func Detect(members []string, rankings map[string]models.Ranking) Result {
	clusters := make(map[string]models.Ranking)
	counts := make(map[string]int)
	for _, r := range rankings {
		k := clusterKey(r)
		counts[k]++
		if _, ok := clusters[k]; !ok {
			clusters[k] = r
		}
	}
	winner, ok := pickWinner(counts, Threshold(len(members)))
	if !ok {
		return Result{}
	}
	return Result{Reached: true, Canonical: clusters[winner].Clone()}
}

// pickWinner returns the key of the single cluster meeting the threshold.
// With the thresholds above, two clusters can never both qualify (the
// threshold always exceeds half the group size); if counts ever claim
// otherwise, consensus is reported as not reached rather than picking
// one arbitrarily.
func pickWinner(counts map[string]int, threshold int) (string, bool) {
	if threshold <= 0 {
		return "", false
	}
	var winner string
	qualified := 0
	for k, n := range counts {
		if n >= threshold {
			qualified++
			winner = k
		}
	}
	if qualified != 1 {
		return "", false
	}
	return winner, true
}

// clusterKey canonicalizes a ranking so identical sequences hash to the
// same key regardless of the order entries appear in the submission.
func clusterKey(r models.Ranking) string {
	sorted := r.Clone()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
	var b strings.Builder
	for _, e := range sorted {
		b.WriteString(strconv.Itoa(e.Rank))
		b.WriteByte(':')
		b.WriteString(e.Participant)
		b.WriteByte('\n')
	}
	return b.String()
}
