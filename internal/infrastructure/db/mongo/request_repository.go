package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

const collectionRequests = "connection_requests"

// RequestRepository implements ports.RequestRepository on MongoDB. The
// pair-uniqueness invariant lives in a unique partial index on pair_key
// restricted to live (pending/accepted) requests, so check-and-insert is a
// single atomic operation.
type RequestRepository struct {
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{col: db.Collection(collectionRequests)}
}

func (r *RequestRepository) Insert(ctx context.Context, req *domain.ConnectionRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRequest
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.ConnectionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.ConnectionRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return &req, nil
}

// Resolve flips a pending request to the given decision. The filter includes
// status=pending, so of two concurrent resolutions exactly one matches; the
// loser is told the request was already resolved.
func (r *RequestRepository) Resolve(ctx context.Context, id string, decision domain.RequestStatus, at time.Time) (*domain.ConnectionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": domain.StatusPending}
	update := bson.M{"$set": bson.M{
		"status":      decision,
		"resolved_at": at.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req domain.ConnectionRequest
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err == nil {
		return &req, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("resolve request: %w", err)
	}

	// No pending request matched: distinguish unknown id from a lost race.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrRequestResolved
}

func (r *RequestRepository) RejectOwnPending(ctx context.Context, fromUserID, toUserID string, at time.Time) (*domain.ConnectionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"from_user_id": fromUserID,
		"to_user_id":   toUserID,
		"status":       domain.StatusPending,
	}
	update := bson.M{"$set": bson.M{
		"status":      domain.StatusRejected,
		"signal":      domain.SignalIgnored,
		"resolved_at": at.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req domain.ConnectionRequest
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("reject own pending: %w", err)
	}
	return &req, nil
}

func (r *RequestRepository) ListPendingFor(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"to_user_id": userID, "status": domain.StatusPending}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ConnectionRequest
	for cur.Next(ctx) {
		var req domain.ConnectionRequest
		if err := cur.Decode(&req); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		out = append(out, &req)
	}
	return out, cur.Err()
}

func (r *RequestRepository) ListInvolving(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"from_user_id": userID},
		bson.M{"to_user_id": userID},
	}}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list involving: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ConnectionRequest
	for cur.Next(ctx) {
		var req domain.ConnectionRequest
		if err := cur.Decode(&req); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		out = append(out, &req)
	}
	return out, cur.Err()
}

// EnsureIndexes creates the request indexes. The partial unique index on
// pair_key admits at most one live (pending or accepted) request per pair;
// rejected rows stay out of it so ignores never collide.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "pair_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{domain.StatusPending, domain.StatusAccepted}},
				}),
		},
		{Keys: bson.D{{Key: "to_user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "from_user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
