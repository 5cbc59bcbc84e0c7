package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// EventRepository persists request lifecycle events to the audit collection.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.SignalEvent) error
}
