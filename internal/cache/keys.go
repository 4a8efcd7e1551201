package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix   = "profile:%d"
	MediaPathKeyPrefix = "media:%d:path"
)

const (
	ProfileTTL = 5 * time.Minute
	// Media paths never change once written, so the TTL only bounds memory.
	MediaPathTTL = time.Hour
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func MediaPathKey(mediaID uint) string {
	return fmt.Sprintf(MediaPathKeyPrefix, mediaID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}
