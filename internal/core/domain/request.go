package domain

import (
	"errors"
	"time"
)

// Signal is the unilateral action a user takes on a candidate profile.
type Signal string

const (
	SignalInterested Signal = "interested"
	SignalIgnored    Signal = "ignored"
)

// RequestStatus represents the lifecycle state of a connection request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions. Accepted and
// rejected are terminal; there is no path back to pending.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusAccepted, StatusRejected},
}

var ErrDuplicateRequest = errors.New("request already exists for pair")
var ErrRequestNotFound = errors.New("request not found")
var ErrRequestResolved = errors.New("request already resolved")
var ErrNotAddressee = errors.New("reviewer is not the addressee")
var ErrSelfSignal = errors.New("cannot send a request to yourself")
var ErrInvalidSignal = errors.New("unknown signal")
var ErrInvalidDecision = errors.New("unknown review decision")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConnectionRequest is a directed request from one user to another. For any
// unordered pair at most one request may be pending at a time and at most one
// may ever reach accepted; PairKey backs that invariant in storage.
type ConnectionRequest struct {
	ID         string        `json:"_id" bson:"_id,omitempty"`
	FromUserID string        `json:"fromUserId" bson:"from_user_id"`
	ToUserID   string        `json:"toUserId" bson:"to_user_id"`
	PairKey    string        `json:"-" bson:"pair_key"`
	Signal     Signal        `json:"signal" bson:"signal"`
	Status     RequestStatus `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"createdAt" bson:"created_at"`
	ResolvedAt *time.Time    `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
}

// PairKey returns the canonical unordered-pair key for two user ids.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Counterpart returns the other user of the request relative to userID.
func (r *ConnectionRequest) Counterpart(userID string) string {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}

// BlocksFeedOf reports whether this request removes its counterpart from the
// given viewer's feed. Every request blocks both directions except an ignore:
// an ignored-rejected row only hides the target from the ignorer's feed, it
// does not stop the target from later seeing (and signalling) the ignorer.
func (r *ConnectionRequest) BlocksFeedOf(viewerID string) bool {
	if r.FromUserID != viewerID && r.ToUserID != viewerID {
		return false
	}
	if r.Signal == SignalIgnored && r.Status == StatusRejected {
		return r.FromUserID == viewerID
	}
	return true
}
