package consensus

import (
	"testing"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

func ranking(order ...string) models.Ranking {
	r := make(models.Ranking, len(order))
	for i, p := range order {
		r[i] = models.RankEntry{Participant: p, Rank: i + 1}
	}
	return r
}

func TestThreshold(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{3, 3},
		{4, 3},
		{5, 3},
		{6, 4},
		{7, 7},
		{8, 8},
		{2, 2}, // undersized groups (admin force-advance) require unanimity
		{1, 1},
	}
	for _, c := range cases {
		if got := Threshold(c.size); got != c.want {
			t.Errorf("Threshold(%d): got %d, want %d", c.size, got, c.want)
		}
	}
}

func TestDetect_GroupOfFourWithThreeIdentical(t *testing.T) {
	members := []string{"A", "B", "C", "D"}
	rankings := map[string]models.Ranking{
		"A": ranking("A", "B", "C", "D"),
		"B": ranking("A", "B", "C", "D"),
		"C": ranking("A", "B", "C", "D"),
		"D": ranking("D", "C", "B", "A"),
	}

	res := Detect(members, rankings)
	if !res.Reached {
		t.Fatal("expected consensus to be reached")
	}

	want := []string{"A", "B", "C", "D"}
	got := res.Canonical.OrderedParticipants()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("canonical order: got %v, want %v", got, want)
		}
	}
}

func TestDetect_AllDistinctRankings(t *testing.T) {
	members := []string{"A", "B", "C"}
	rankings := map[string]models.Ranking{
		"A": ranking("A", "B", "C"),
		"B": ranking("B", "A", "C"),
		"C": ranking("C", "B", "A"),
	}

	res := Detect(members, rankings)
	if res.Reached {
		t.Error("expected no consensus for three distinct rankings")
	}
	if res.Canonical != nil {
		t.Error("expected no canonical ranking without consensus")
	}
}

func TestDetect_BelowThreshold(t *testing.T) {
	// Group of 6 requires 4 identical submissions; 3 is not enough.
	members := []string{"A", "B", "C", "D", "E", "F"}
	rankings := map[string]models.Ranking{
		"A": ranking("A", "B", "C", "D", "E", "F"),
		"B": ranking("A", "B", "C", "D", "E", "F"),
		"C": ranking("A", "B", "C", "D", "E", "F"),
		"D": ranking("F", "E", "D", "C", "B", "A"),
	}

	if res := Detect(members, rankings); res.Reached {
		t.Error("expected no consensus with 3 of 6 identical")
	}
}

func TestDetect_NoRankingsSubmitted(t *testing.T) {
	members := []string{"A", "B", "C"}
	if res := Detect(members, nil); res.Reached {
		t.Error("expected no consensus with zero submissions")
	}
}

func TestDetect_EntryOrderIrrelevant(t *testing.T) {
	// Two submissions of the same ranking with entries listed in a
	// different order must land in the same cluster.
	members := []string{"A", "B", "C"}
	rankings := map[string]models.Ranking{
		"A": {{Participant: "A", Rank: 1}, {Participant: "B", Rank: 2}, {Participant: "C", Rank: 3}},
		"B": {{Participant: "C", Rank: 3}, {Participant: "A", Rank: 1}, {Participant: "B", Rank: 2}},
		"C": {{Participant: "B", Rank: 2}, {Participant: "C", Rank: 3}, {Participant: "A", Rank: 1}},
	}

	res := Detect(members, rankings)
	if !res.Reached {
		t.Fatal("expected consensus for identical rankings in different entry order")
	}
	got := res.Canonical.OrderedParticipants()
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("canonical order: got %v, want %v", got, want)
		}
	}
}

// The thresholds always exceed half the group size, so two clusters can
// never both qualify through Detect. The guard is exercised directly.
func TestPickWinner_MultipleQualifyingClusters(t *testing.T) {
	counts := map[string]int{"x": 3, "y": 3}
	if _, ok := pickWinner(counts, 3); ok {
		t.Error("expected no winner when two clusters meet the threshold")
	}
}

func TestPickWinner_SingleQualifyingCluster(t *testing.T) {
	counts := map[string]int{"x": 3, "y": 1}
	winner, ok := pickWinner(counts, 3)
	if !ok || winner != "x" {
		t.Errorf("pickWinner: got (%q, %v), want (%q, true)", winner, ok, "x")
	}
}
