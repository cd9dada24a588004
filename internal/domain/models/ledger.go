// internal/domain/models/ledger.go
package models

import "time"

// Token identifies a reward token kind.
type Token string

const (
	// TokenREP is non-transferable reputation, earned per consensus
	// participation.
	TokenREP Token = "REP"
	// TokenPHIL is the transferable reward token, earned per canonical
	// rank position.
	TokenPHIL Token = "PHIL"
)

// Payout is one reward credit that has been applied to the ledger.
// Exactly one document may exist per (meeting, identity, token); the
// unique index on that triple is what makes finalize retries safe.
type Payout struct {
	MeetingID string    `bson:"meeting_id" json:"meeting_id"`
	Identity  string    `bson:"identity" json:"identity"`
	Token     Token     `bson:"token" json:"token"`
	Amount    int64     `bson:"amount" json:"amount"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Balance is one identity's accumulated token balances.
type Balance struct {
	Identity string `bson:"_id" json:"identity"`
	REP      int64  `bson:"rep" json:"rep"`
	PHIL     int64  `bson:"phil" json:"phil"`
}

// Treasury is the bounded pool reward credits draw from. Credits fail
// once a pool is exhausted.
type Treasury struct {
	ID       string `bson:"_id" json:"-"`
	REPPool  int64  `bson:"rep_pool" json:"rep_pool"`
	PHILPool int64  `bson:"phil_pool" json:"phil_pool"`
}
