package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// UserRepository defines persistence operations for user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, emailID string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users for the given ids, keyed by id. Unknown ids
	// are silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListCandidates returns up to limit users whose id is in none of
	// excludeIDs, in stable store insertion order.
	ListCandidates(ctx context.Context, excludeIDs []string, limit int) ([]*domain.User, error)
}
