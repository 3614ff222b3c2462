package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	BlogKeyPrefix      = "blog:%d"
	LikeStateKeyPrefix = "blog:%d:likes"
	BlogListKey        = "blogs:home"
)

const (
	UserTTL      = 5 * time.Minute
	BlogTTL      = 30 * time.Minute
	LikeStateTTL = 1 * time.Minute
	BlogListTTL  = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func BlogKey(blogID uint) string {
	return fmt.Sprintf(BlogKeyPrefix, blogID)
}

func LikeStateKey(blogID uint) string {
	return fmt.Sprintf(LikeStateKeyPrefix, blogID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateBlog(ctx context.Context, blogID uint) {
	Invalidate(ctx, BlogKey(blogID))
	Invalidate(ctx, LikeStateKey(blogID))
}

func InvalidateBlogList(ctx context.Context) {
	Invalidate(ctx, BlogListKey)
}
