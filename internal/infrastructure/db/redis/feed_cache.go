package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const feedTTL = time.Minute

// FeedCache stores the computed candidate id list per viewer.
// Key format: feed:<viewer_id>
type FeedCache struct {
	client *redis.Client
}

// NewFeedCache creates a FeedCache wrapping the given Redis client.
func NewFeedCache(client *redis.Client) *FeedCache {
	return &FeedCache{client: client}
}

// Get returns the cached candidate ids for a viewer. The second return value
// is false on a cache miss.
func (c *FeedCache) Get(ctx context.Context, viewerID string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(viewerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("feed cache get: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false, fmt.Errorf("feed cache decode: %w", err)
	}
	return ids, true, nil
}

// Set stores the candidate ids for a viewer with a short TTL. The TTL bounds
// staleness if an invalidation is ever missed.
func (c *FeedCache) Set(ctx context.Context, viewerID string, candidateIDs []string) error {
	raw, err := json.Marshal(candidateIDs)
	if err != nil {
		return fmt.Errorf("feed cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(viewerID), raw, feedTTL).Err()
}

// Invalidate drops the cached feeds of the given viewers.
func (c *FeedCache) Invalidate(ctx context.Context, viewerIDs ...string) error {
	if len(viewerIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(viewerIDs))
	for _, id := range viewerIDs {
		keys = append(keys, c.key(id))
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *FeedCache) key(viewerID string) string {
	return "feed:" + viewerID
}
