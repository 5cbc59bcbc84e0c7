package ports

import (
	"context"
	"time"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// ConnectionItem is a connection fact resolved to the counterpart's profile.
type ConnectionItem struct {
	User  *domain.User
	Since time.Time
}

// ConnectionService materializes and reads connection facts.
type ConnectionService interface {
	// Materialize upserts the connection fact for an accepted request.
	// Idempotent: calling it twice for the same request is safe.
	Materialize(ctx context.Context, request *domain.ConnectionRequest) error

	// ListConnections returns all connections involving userID ordered by
	// since descending, each resolved to the counterpart profile.
	ListConnections(ctx context.Context, userID string) ([]ConnectionItem, error)
}
