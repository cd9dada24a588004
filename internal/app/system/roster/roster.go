// internal/app/system/roster/roster.go

// Package roster provides the default group partitioner: a deterministic
// round-robin split of the frozen participant set into groups of 3-6.
//
// The partitioning algorithm is deliberately replaceable; the engine only
// requires an exact partition. This one picks the fewest groups whose
// sizes fit the 3-6 bound, spreading any remainder one participant at a
// time across the leading groups.
package roster

import (
	"context"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

const (
	minGroupSize = 3
	maxGroupSize = 6
)

// RoundRobin assigns participants to groups in signup order.
type RoundRobin struct {
	target int // preferred group size, clamped to [3,6]
}

// New returns a RoundRobin roster with the given preferred group size.
func New(targetGroupSize int) *RoundRobin {
	if targetGroupSize < minGroupSize {
		targetGroupSize = minGroupSize
	}
	if targetGroupSize > maxGroupSize {
		targetGroupSize = maxGroupSize
	}
	return &RoundRobin{target: targetGroupSize}
}

// AssignGroups partitions participants into groups. Fewer than three
// participants (possible only via admin force-advance) yields a single
// undersized group rather than an error; the consensus rules then require
// unanimity from that group.
func (r *RoundRobin) AssignGroups(ctx context.Context, meetingID string, participants []string) ([]models.Group, error) {
	n := len(participants)
	if n == 0 {
		return nil, nil
	}

	sizes := groupSizes(n, r.target)
	groups := make([]models.Group, len(sizes))
	offset := 0
	for i, size := range sizes {
		groups[i] = models.Group{
			Members:       append([]string(nil), participants[offset:offset+size]...),
			Contributions: map[string]models.Contribution{},
			Rankings:      map[string]models.Ranking{},
		}
		offset += size
	}
	return groups, nil
}

// groupSizes splits n into group sizes as close to target as possible
// while staying within [3,6] whenever n allows it.
func groupSizes(n, target int) []int {
	if n < minGroupSize {
		return []int{n}
	}

	count := n / target
	if n%target != 0 {
		count++
	}
	// Clamp the group count so sizes stay within bounds.
	if minCount := (n + maxGroupSize - 1) / maxGroupSize; count < minCount {
		count = minCount
	}
	if maxCount := n / minGroupSize; count > maxCount {
		count = maxCount
	}

	base := n / count
	rem := n % count
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
