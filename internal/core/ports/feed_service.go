package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// FeedRanker orders the eligible candidates for one viewer. Ranking quality is
// out of scope; implementations only have to be stable for a fixed ledger.
type FeedRanker interface {
	Rank(viewerID string, candidates []*domain.User) []*domain.User
}

// FeedCache holds the candidate id set computed for a viewer so repeated reads
// against an unchanged ledger stay cheap and return the same set.
type FeedCache interface {
	Get(ctx context.Context, viewerID string) ([]string, bool, error)
	Set(ctx context.Context, viewerID string, candidateIDs []string) error
	// Invalidate drops the cached feeds of every given viewer.
	Invalidate(ctx context.Context, viewerIDs ...string) error
}

// FeedService produces the batch of candidate profiles a viewer may signal.
type FeedService interface {
	GetFeed(ctx context.Context, viewerID string, limit int) ([]*domain.User, error)
}
