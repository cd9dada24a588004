// internal/app/store/ledger/ledgerstore.go
package ledgerstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// ErrTreasuryExhausted means a credit could not be drawn because the
// token's treasury pool is empty (or too small for the amount).
var ErrTreasuryExhausted = errors.New("treasury pool has insufficient funds")

const treasuryID = "treasury"

// Store is the production RewardLedger: payout records (one per meeting/
// identity/token, enforced by a unique index), per-identity balances, and
// a bounded treasury pool the credits draw from.
//
// Credit calls are idempotent: re-issuing a credit that already landed is
// a no-op success, so a retried finalize can never pay twice even if the
// engine's own payout bookkeeping was lost.
type Store struct {
	payouts  *mongo.Collection
	balances *mongo.Collection
	treasury *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		payouts:  db.Collection("payouts"),
		balances: db.Collection("balances"),
		treasury: db.Collection("treasury"),
	}
}

// EnsureIndexes creates the unique payout index that makes credits
// idempotent. Call once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.payouts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "meeting_id", Value: 1},
			{Key: "identity", Value: 1},
			{Key: "token", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// SeedTreasury initializes the bounded pools if no treasury document
// exists yet. Existing pools are never overwritten.
func (s *Store) SeedTreasury(ctx context.Context, repPool, philPool int64) error {
	_, err := s.treasury.UpdateOne(ctx,
		bson.M{"_id": treasuryID},
		bson.M{"$setOnInsert": models.Treasury{ID: treasuryID, REPPool: repPool, PHILPool: philPool}},
		options.Update().SetUpsert(true))
	return err
}

// CreditREP credits non-transferable reputation to an identity.
func (s *Store) CreditREP(ctx context.Context, meetingID, identity string, amount int64) error {
	return s.credit(ctx, meetingID, identity, models.TokenREP, amount)
}

// CreditPHIL credits transferable reward tokens to an identity.
func (s *Store) CreditPHIL(ctx context.Context, meetingID, identity string, amount int64) error {
	return s.credit(ctx, meetingID, identity, models.TokenPHIL, amount)
}

// credit performs the three-step payout: record the payout (the unique
// index is the idempotency point), draw the amount from the treasury
// pool, and bump the balance. If the pool cannot cover the amount the
// payout record is removed again so a later retry can succeed after the
// treasury is topped up.
func (s *Store) credit(ctx context.Context, meetingID, identity string, token models.Token, amount int64) error {
	payout := models.Payout{
		MeetingID: meetingID,
		Identity:  identity,
		Token:     token,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.payouts.InsertOne(ctx, payout); err != nil {
		if wafflemongo.IsDup(err) {
			return nil // already paid in a prior attempt
		}
		return err
	}

	if err := s.drawFromPool(ctx, token, amount); err != nil {
		// Undo the payout marker so the credit stays owed.
		_, _ = s.payouts.DeleteOne(ctx, bson.M{
			"meeting_id": meetingID, "identity": identity, "token": token,
		})
		return err
	}

	field := "rep"
	if token == models.TokenPHIL {
		field = "phil"
	}
	_, err := s.balances.UpdateOne(ctx,
		bson.M{"_id": identity},
		bson.M{"$inc": bson.M{field: amount}},
		options.Update().SetUpsert(true))
	return err
}

// drawFromPool atomically decrements a treasury pool, failing when the
// pool cannot cover the amount.
func (s *Store) drawFromPool(ctx context.Context, token models.Token, amount int64) error {
	field := "rep_pool"
	if token == models.TokenPHIL {
		field = "phil_pool"
	}
	res, err := s.treasury.UpdateOne(ctx,
		bson.M{"_id": treasuryID, field: bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{field: -amount}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrTreasuryExhausted
	}
	return nil
}

// GetBalance returns an identity's accumulated balances; an identity
// that was never credited has zero balances, not an error.
func (s *Store) GetBalance(ctx context.Context, identity string) (models.Balance, error) {
	var b models.Balance
	err := s.balances.FindOne(ctx, bson.M{"_id": identity}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Balance{Identity: identity}, nil
	}
	if err != nil {
		return models.Balance{}, err
	}
	return b, nil
}

// Treasury returns the current pool levels.
func (s *Store) Treasury(ctx context.Context) (models.Treasury, error) {
	var t models.Treasury
	if err := s.treasury.FindOne(ctx, bson.M{"_id": treasuryID}).Decode(&t); err != nil {
		return models.Treasury{}, err
	}
	return t, nil
}

// PayoutsForMeeting lists the credits recorded for one meeting, newest
// first. Used by ops tooling to audit a finalize run.
func (s *Store) PayoutsForMeeting(ctx context.Context, meetingID string) ([]models.Payout, error) {
	cur, err := s.payouts.Find(ctx, bson.M{"meeting_id": meetingID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Payout
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
