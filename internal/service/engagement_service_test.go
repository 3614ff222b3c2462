package service

import (
	"context"
	"testing"
)

func TestEngagementServiceLikeUnknownBlog(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.existsFn = func(context.Context, uint) (bool, error) { return false, nil }
	svc := NewEngagementService(blogs)

	_, err := svc.Like(context.Background(), 9, 1)
	if errorCodeOf(err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestEngagementServiceLikeDuplicate(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.likeFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	blogs.countLikesFn = func(context.Context, uint) (int64, error) {
		t.Fatal("count must not be recomputed after a rejected like")
		return 0, nil
	}
	svc := NewEngagementService(blogs)

	_, err := svc.Like(context.Background(), 9, 1)
	if errorCodeOf(err) != "CONFLICT" {
		t.Fatalf("expected CONFLICT on duplicate like, got %v", err)
	}
}

func TestEngagementServiceLikeReturnsFreshCount(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.countLikesFn = func(context.Context, uint) (int64, error) { return 3, nil }
	svc := NewEngagementService(blogs)

	likes, err := svc.Like(context.Background(), 9, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if likes != 3 {
		t.Fatalf("expected fresh count 3, got %d", likes)
	}
}

func TestEngagementServiceUnlikeWithoutLike(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.unlikeFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewEngagementService(blogs)

	_, err := svc.Unlike(context.Background(), 9, 1)
	if errorCodeOf(err) != "CONFLICT" {
		t.Fatalf("expected CONFLICT when unliking without a like, got %v", err)
	}
}

func TestEngagementServiceInitialLikeStateAnonymous(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.countLikesFn = func(context.Context, uint) (int64, error) { return 7, nil }
	blogs.isLikedFn = func(context.Context, uint, uint) (bool, error) {
		t.Fatal("membership must not be checked for anonymous readers")
		return false, nil
	}
	svc := NewEngagementService(blogs)

	state, err := svc.InitialLikeState(context.Background(), 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Likes != 7 || state.LikedByUser {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestEngagementServiceInitialLikeStateAuthenticated(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.countLikesFn = func(context.Context, uint) (int64, error) { return 7, nil }
	blogs.isLikedFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	svc := NewEngagementService(blogs)

	state, err := svc.InitialLikeState(context.Background(), 9, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Likes != 7 || !state.LikedByUser {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestEngagementServiceInitialLikeStateUnknownBlog(t *testing.T) {
	blogs := noopBlogRepo()
	blogs.existsFn = func(context.Context, uint) (bool, error) { return false, nil }
	svc := NewEngagementService(blogs)

	_, err := svc.InitialLikeState(context.Background(), 9, 0)
	if errorCodeOf(err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
