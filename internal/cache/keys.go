package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix    = "user:%s"
	postKeyPrefix    = "post:%d"
	postsListKey     = "posts:feed"
	productsLiveKey  = "products:live"
	productKeyPrefix = "product:%d"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	ListTTL     = 1 * time.Minute
	ProductsTTL = 10 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// PostsListKey is the key for the anonymous first page of the feed.
// Personalized pages are never cached.
func PostsListKey() string {
	return postsListKey
}

func ProductsLiveKey() string {
	return productsLiveKey
}

func ProductKey(productID uint) string {
	return fmt.Sprintf(productKeyPrefix, productID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}

func InvalidateProducts(ctx context.Context) {
	Invalidate(ctx, productsLiveKey)
}
