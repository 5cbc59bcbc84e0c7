package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// ConnectionRepository persists materialized connection facts.
type ConnectionRepository interface {
	// Upsert stores the connection keyed by its unordered pair. Calling it
	// again for the same pair is a no-op, so retries never create duplicates.
	Upsert(ctx context.Context, c *domain.Connection) error

	// ListFor returns all connections involving userID, newest first.
	ListFor(ctx context.Context, userID string) ([]*domain.Connection, error)
}
