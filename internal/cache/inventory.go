package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	ArtworkKeyPrefix = "artwork:%d"
	TrendingTagsKey  = "tags:trending"
)

const (
	UserTTL         = 5 * time.Minute
	ArtworkTTL      = 10 * time.Minute
	TrendingTagsTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ArtworkKey(artworkID uint) string {
	return fmt.Sprintf(ArtworkKeyPrefix, artworkID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateArtwork(ctx context.Context, artworkID uint) {
	Invalidate(ctx, ArtworkKey(artworkID))
}

func InvalidateTrendingTags(ctx context.Context) {
	Invalidate(ctx, TrendingTagsKey)
}
