// internal/app/store/meetings/meetingstore.go
package meetingstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// Store persists whole-meeting snapshots, one document per meeting with
// the meeting id as _id. The engine owns all mutation logic; this store
// only replaces documents and loads them back at startup.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meetings")}
}

// Save upserts the full snapshot for a meeting.
func (s *Store) Save(ctx context.Context, m models.Meeting) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, opts)
	return err
}

// LoadAll returns every persisted meeting.
func (s *Store) LoadAll(ctx context.Context) ([]models.Meeting, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
