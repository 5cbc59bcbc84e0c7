package domain

import (
	"errors"
	"time"
)

var ErrRequestNotAccepted = errors.New("request is not accepted")

// Connection is the symmetric, permanent fact of mutual acceptance between two
// users. It is materialized from an accepted request, keyed by the unordered
// pair, and never mutated afterwards.
type Connection struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	PairKey   string    `json:"-" bson:"pair_key"`
	UserA     string    `json:"userA" bson:"user_a"`
	UserB     string    `json:"userB" bson:"user_b"`
	RequestID string    `json:"requestId" bson:"request_id"`
	Since     time.Time `json:"since" bson:"since"`
}

// NewConnection builds the connection fact for an accepted request. User ids
// are stored in canonical order so the fact is identical regardless of which
// side sent the original request.
func NewConnection(r *ConnectionRequest) (*Connection, error) {
	if r.Status != StatusAccepted {
		return nil, ErrRequestNotAccepted
	}
	a, b := r.FromUserID, r.ToUserID
	if b < a {
		a, b = b, a
	}
	since := time.Now().UTC()
	if r.ResolvedAt != nil {
		since = r.ResolvedAt.UTC()
	}
	return &Connection{
		PairKey:   PairKey(a, b),
		UserA:     a,
		UserB:     b,
		RequestID: r.ID,
		Since:     since,
	}, nil
}

// Counterpart returns the other member of the connection relative to userID.
func (c *Connection) Counterpart(userID string) string {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}
