package usecase

import (
	"context"
	"strconv"
	"sync"

	"ViviCity-App/internal/domain/model"
)

type fakeReviewsRepo struct {
	mu      sync.Mutex
	reviews []model.Review
	err     error
	calls   int
}

func (r *fakeReviewsRepo) GetAll(ctx context.Context) ([]model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]model.Review(nil), r.reviews...), nil
}

func (r *fakeReviewsRepo) Create(ctx context.Context, review *model.Review) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = "review-" + strconv.Itoa(len(r.reviews)+1)
	r.reviews = append(r.reviews, *review)
	return review.ID, nil
}

type fakeActionsRepo struct {
	actions []model.Action
	err     error
}

func (r *fakeActionsRepo) GetAll(ctx context.Context) ([]model.Action, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.actions, nil
}

func (r *fakeActionsRepo) Create(ctx context.Context, action *model.Action) (string, error) {
	action.ID = "action-" + strconv.Itoa(len(r.actions)+1)
	r.actions = append(r.actions, *action)
	return action.ID, nil
}

type fakeObserver struct {
	cacheHits     int
	cacheMisses   int
	aggregations  int
	fetchFailures []string
	anomalous     int
}

func (o *fakeObserver) ObserveAggregation(string, int, int) { o.aggregations++ }
func (o *fakeObserver) ObserveCache(hit bool) {
	if hit {
		o.cacheHits++
	} else {
		o.cacheMisses++
	}
}
func (o *fakeObserver) ObserveFetchFailure(collection string) {
	o.fetchFailures = append(o.fetchFailures, collection)
}
func (o *fakeObserver) ObserveAudit(anomalous int) { o.anomalous = anomalous }

type fakePublisher struct {
	published [][]model.AnomalyReport
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, reports []model.AnomalyReport) error {
	p.published = append(p.published, reports)
	return p.err
}
