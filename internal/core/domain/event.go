package domain

import "time"

// SignalEvent is an audit-trail record of a request lifecycle change. Events
// are observational only; they never drive state transitions.
type SignalEvent struct {
	RequestID  string
	PairKey    string
	FromUserID string
	ToUserID   string
	Kind       string // created, ignored, accepted, rejected
	OccurredAt time.Time
}
