// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// Store reads the members collection the fronting application maintains.
// AgoraHub never creates members itself outside of tooling; it only
// answers the membership gate question for meeting signup.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// GetByID returns one member record.
func (s *Store) GetByID(ctx context.Context, identity string) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": identity}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// IsApprovedMember implements the engine's membership gate: true only
// for an existing member whose status is active. An unknown identity is
// not an error, just not a member.
func (s *Store) IsApprovedMember(ctx context.Context, identity string) (bool, error) {
	m, err := s.GetByID(ctx, identity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.Approved(), nil
}

// Upsert writes a member record. Used by fixtures and ops tooling.
func (s *Store) Upsert(ctx context.Context, m models.Member) error {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, options.Replace().SetUpsert(true))
	return err
}
