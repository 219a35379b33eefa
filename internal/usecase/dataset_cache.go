package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// ReviewSnapshot はある時点で取得したレビュー全件
// 呼び出し側は Reviews を変更してはならない
type ReviewSnapshot struct {
	Reviews   []model.Review
	Version   uint64
	FetchedAt time.Time
}

// ReviewDatasetCache はレビュー全件を TTL の間だけ保持する
// 再取得のたびに Version が進み、集計キャッシュのキーになる
type ReviewDatasetCache struct {
	reviewsRepo repository.ReviewsRepository
	ttl         time.Duration
	now         func() time.Time
	observer    Observer

	mu       sync.Mutex
	snapshot *ReviewSnapshot
	version  uint64
}

func NewReviewDatasetCache(reviewsRepo repository.ReviewsRepository, ttl time.Duration, observer Observer) *ReviewDatasetCache {
	return &ReviewDatasetCache{
		reviewsRepo: reviewsRepo,
		ttl:         ttl,
		now:         time.Now,
		observer:    observerOrNoop(observer),
	}
}

// Snapshot は有効なスナップショットを返し、期限切れなら再取得する
func (c *ReviewDatasetCache) Snapshot(ctx context.Context) (*ReviewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.now().Sub(c.snapshot.FetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	reviews, err := c.reviewsRepo.GetAll(ctx)
	if err != nil {
		c.observer.ObserveFetchFailure(model.CollectionReviews)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	c.version++
	c.snapshot = &ReviewSnapshot{
		Reviews:   reviews,
		Version:   c.version,
		FetchedAt: c.now(),
	}
	log.Printf("✅ レビューを再取得しました (%d件, version=%d)", len(reviews), c.version)
	return c.snapshot, nil
}

// Invalidate は次回の Snapshot で再取得させる
func (c *ReviewDatasetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}
