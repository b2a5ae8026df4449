package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// reviewTTL bounds how long classified comment sets are reused. The
// dataset changes rarely but Tier 2 labels come from a live model, so
// entries expire rather than live forever.
const reviewTTL = 15 * time.Minute

// ReviewCache stores classified comment sets per subreddit so repeated
// analyses against the same university skip the Tier 2 classifier calls.
// Comment IDs are stripped before caching; the pipeline stamps fresh
// request-scoped IDs on every hit.
type ReviewCache interface {
	Set(ctx context.Context, subreddit string, comments []model.Comment) error
	Get(ctx context.Context, subreddit string) ([]model.Comment, error)
}

type reviewCache struct {
	client *redis.Client
}

// NewReviewCache creates a Redis-backed review cache
func NewReviewCache(client *redis.Client) ReviewCache {
	return &reviewCache{
		client: client,
	}
}

func (c *reviewCache) key(subreddit string) string {
	return "reviews:" + subreddit
}

func (c *reviewCache) Set(ctx context.Context, subreddit string, comments []model.Comment) error {
	stripped := make([]model.Comment, len(comments))
	for i, comment := range comments {
		comment.ID = ""
		stripped[i] = comment
	}
	data, err := json.Marshal(stripped)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(subreddit), data, reviewTTL).Err()
}

// Get returns (nil, nil) on a cache miss.
func (c *reviewCache) Get(ctx context.Context, subreddit string) ([]model.Comment, error) {
	data, err := c.client.Get(ctx, c.key(subreddit)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var comments []model.Comment
	if err := json.Unmarshal([]byte(data), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
