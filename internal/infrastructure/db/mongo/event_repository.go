package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

// EventRepository appends request lifecycle events to the signal_events audit
// collection.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// InsertEvent persists one audit record.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.SignalEvent) error {
	doc := bson.M{
		"request_id":   event.RequestID,
		"pair_key":     event.PairKey,
		"from_user_id": event.FromUserID,
		"to_user_id":   event.ToUserID,
		"kind":         event.Kind,
		"occurred_at":  event.OccurredAt.UTC(),
		"recorded_at":  time.Now().UTC(),
	}

	_, err := r.db.Collection("signal_events").InsertOne(ctx, doc)
	return err
}
