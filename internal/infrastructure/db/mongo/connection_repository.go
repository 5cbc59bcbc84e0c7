package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

const collectionConnections = "connections"

// ConnectionRepository implements ports.ConnectionRepository on MongoDB.
type ConnectionRepository struct {
	col *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{col: db.Collection(collectionConnections)}
}

// Upsert writes the connection fact keyed by its unordered pair. $setOnInsert
// makes the write a no-op when the pair is already connected, so replaying a
// materialization cannot create a duplicate or move `since`.
func (r *ConnectionRepository) Upsert(ctx context.Context, c *domain.Connection) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"pair_key": c.PairKey}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        c.ID,
		"pair_key":   c.PairKey,
		"user_a":     c.UserA,
		"user_b":     c.UserB,
		"request_id": c.RequestID,
		"since":      c.Since.UTC(),
	}}

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert connection: %w", err)
	}
	return nil
}

func (r *ConnectionRepository) ListFor(ctx context.Context, userID string) ([]*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"user_a": userID},
		bson.M{"user_b": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "since", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Connection
	for cur.Next(ctx) {
		var c domain.Connection
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode connection: %w", err)
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique pair index on the connections collection.
func (r *ConnectionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pair_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_a", Value: 1}}},
		{Keys: bson.D{{Key: "user_b", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
