package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GroupKeyPrefix = "group:%s"
	IndexFirstPage = "posts:index:first"
)

const (
	GroupTTL     = 10 * time.Minute
	IndexPageTTL = 1 * time.Minute
)

// GroupKey returns the cache key for a group looked up by slug.
func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

// Invalidate removes a key; a nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateIndex drops the cached first index page. Called whenever a post
// is created or updated so listings never serve stale content.
func InvalidateIndex(ctx context.Context) {
	Invalidate(ctx, IndexFirstPage)
}
