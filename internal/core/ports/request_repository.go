package ports

import (
	"context"
	"time"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// RequestRepository is the single source of truth for connection requests.
// All mutations go through its atomic insert/resolve operations; callers never
// read-then-write around it.
type RequestRepository interface {
	// Insert stores a new request. Inserting a pending request for a pair that
	// already has a pending or accepted request fails with ErrDuplicateRequest
	// (enforced by a unique partial index, so concurrent inserts serialize).
	Insert(ctx context.Context, r *domain.ConnectionRequest) error

	FindByID(ctx context.Context, id string) (*domain.ConnectionRequest, error)

	// Resolve performs the pending→decision transition as a compare-and-swap
	// on status=pending. When the request exists but is no longer pending it
	// returns ErrRequestResolved; when it does not exist, ErrRequestNotFound.
	Resolve(ctx context.Context, id string, decision domain.RequestStatus, at time.Time) (*domain.ConnectionRequest, error)

	// RejectOwnPending flips the sender's own pending request to an
	// ignored-rejected row. Returns ErrRequestNotFound when the sender has no
	// pending request to the target.
	RejectOwnPending(ctx context.Context, fromUserID, toUserID string, at time.Time) (*domain.ConnectionRequest, error)

	// ListPendingFor returns pending requests addressed to userID, newest
	// first with id ascending as tie-break.
	ListPendingFor(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error)

	// ListInvolving returns every request with userID on either side,
	// regardless of status. Used for feed exclusion.
	ListInvolving(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error)
}
