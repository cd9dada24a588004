// internal/domain/rewards/rewards.go

// Package rewards computes the token credits owed to a group that reached
// consensus. Groups without consensus earn nothing; that is a hard
// business rule, not a fallback.
package rewards

import "github.com/dalemusser/agorahub/internal/domain/models"

// philByRank holds the Fibonacci-weighted PHIL payout per canonical rank
// position (rank 1 first). Positions past the sequence earn nothing.
var philByRank = []int64{987, 610, 377, 233, 144, 89}

// Credit is one token amount owed to one participant.
type Credit struct {
	Participant string
	Token       models.Token
	Amount      int64
}

// REPAward returns the flat REP amount every member of a consensus group
// of the given size receives. Sizes outside the expected 3-6 range fall
// back to a nominal amount.
func REPAward(groupSize int) int64 {
	switch groupSize {
	case 3:
		return 144
	case 4:
		return 233
	case 5:
		return 377
	case 6:
		return 610
	default:
		return 100
	}
}

// PHILAward returns the PHIL amount for a canonical rank position
// (0-indexed), or 0 for positions beyond the payout sequence.
func PHILAward(position int) int64 {
	if position < 0 || position >= len(philByRank) {
		return 0
	}
	return philByRank[position]
}

// ForGroup computes all credits owed for a group. It returns nil unless
// the group's consensus result has been evaluated and reached.
//
// REP goes to every group member, ranked or not. PHIL follows the
// canonical ranking in rank order.
func ForGroup(g models.Group) []Credit {
	if !g.ConsensusReached {
		return nil
	}

	credits := make([]Credit, 0, len(g.Members)+len(g.CanonicalOrder))
	rep := REPAward(len(g.Members))
	for _, member := range g.Members {
		credits = append(credits, Credit{Participant: member, Token: models.TokenREP, Amount: rep})
	}
	for i, participant := range g.CanonicalOrder {
		amount := PHILAward(i)
		if amount == 0 {
			continue
		}
		credits = append(credits, Credit{Participant: participant, Token: models.TokenPHIL, Amount: amount})
	}
	return credits
}
