package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mentormatch/connect-api/internal/api/metrics"
	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
	// feedBatchSize is how many candidates are computed and cached per viewer,
	// independent of the page limit the client asked for.
	feedBatchSize = 100
)

// FeedService produces candidate batches for one viewer: everyone except the
// viewer and anyone already tied to the viewer by a request.
type FeedService struct {
	users    ports.UserRepository
	requests ports.RequestRepository
	ranker   ports.FeedRanker
	cache    ports.FeedCache
	logger   zerolog.Logger
}

func NewFeedService(
	users ports.UserRepository,
	requests ports.RequestRepository,
	ranker ports.FeedRanker,
	cache ports.FeedCache,
	logger zerolog.Logger,
) *FeedService {
	return &FeedService{users: users, requests: requests, ranker: ranker, cache: cache, logger: logger}
}

// GetFeed returns up to limit candidate profiles for viewerID. Repeated calls
// against an unchanged ledger return the same set: the candidate ids are
// cached per viewer and the cache is invalidated whenever a signal or review
// touches the viewer.
func (s *FeedService) GetFeed(ctx context.Context, viewerID string, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	if ids, ok := s.cachedCandidates(ctx, viewerID); ok {
		users, err := s.resolveInOrder(ctx, ids)
		if err == nil {
			metrics.FeedCacheTotal.WithLabelValues("hit").Inc()
			return clip(users, limit), nil
		}
		s.logger.Warn().Err(err).Str("viewer", viewerID).Msg("cached feed resolution failed, recomputing")
	}
	metrics.FeedCacheTotal.WithLabelValues("miss").Inc()

	excluded, err := s.excludedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.users.ListCandidates(ctx, excluded, feedBatchSize)
	if err != nil {
		return nil, err
	}
	ranked := s.ranker.Rank(viewerID, candidates)

	ids := make([]string, 0, len(ranked))
	for _, u := range ranked {
		ids = append(ids, u.ID)
	}
	if err := s.cache.Set(ctx, viewerID, ids); err != nil {
		s.logger.Warn().Err(err).Str("viewer", viewerID).Msg("failed to cache feed")
	}

	metrics.FeedServedTotal.Inc()
	return clip(ranked, limit), nil
}

// excludedUserIDs collects the viewer plus every counterpart of a request that
// blocks the viewer's feed. An ignored-rejected row aimed at the viewer does
// not block: being ignored must not hide the ignorer from the target.
func (s *FeedService) excludedUserIDs(ctx context.Context, viewerID string) ([]string, error) {
	involving, err := s.requests.ListInvolving(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{viewerID: {}}
	excluded := []string{viewerID}
	for _, r := range involving {
		if !r.BlocksFeedOf(viewerID) {
			continue
		}
		other := r.Counterpart(viewerID)
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		excluded = append(excluded, other)
	}
	return excluded, nil
}

func (s *FeedService) cachedCandidates(ctx context.Context, viewerID string) ([]string, bool) {
	ids, ok, err := s.cache.Get(ctx, viewerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("viewer", viewerID).Msg("feed cache read failed")
		return nil, false
	}
	return ids, ok
}

// resolveInOrder fetches users for the cached ids preserving cache order.
// Ids whose profile has disappeared are dropped.
func (s *FeedService) resolveInOrder(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	byID, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func clip(users []*domain.User, limit int) []*domain.User {
	if len(users) > limit {
		return users[:limit]
	}
	return users
}

// insertionOrderRanker is the default FeedRanker: candidates stay in stable
// store insertion order. Ranking quality is explicitly out of scope.
type insertionOrderRanker struct{}

// NewInsertionOrderRanker returns the default no-op ranking strategy.
func NewInsertionOrderRanker() ports.FeedRanker {
	return insertionOrderRanker{}
}

func (insertionOrderRanker) Rank(_ string, candidates []*domain.User) []*domain.User {
	return candidates
}
