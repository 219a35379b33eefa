package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ViviCity-App/internal/domain/model"
)

type fakeReviewRecordsRepo struct {
	records       []model.ReviewRecord
	lastCriterion string
	lastLimit     int
}

func (r *fakeReviewRecordsRepo) List(ctx context.Context, criterion string, limit int) ([]model.ReviewRecord, error) {
	r.lastCriterion = criterion
	r.lastLimit = limit
	return r.records, nil
}

func (r *fakeReviewRecordsRepo) Create(ctx context.Context, record *model.ReviewRecord) (*model.ReviewRecord, error) {
	created := *record
	created.ID = int64(len(r.records) + 1)
	r.records = append(r.records, created)
	return &created, nil
}

type fakeActionRecordsRepo struct {
	records   []model.ActionRecord
	lastAfter time.Time
}

func (r *fakeActionRecordsRepo) List(ctx context.Context, after time.Time, limit int) ([]model.ActionRecord, error) {
	r.lastAfter = after
	return r.records, nil
}

func (r *fakeActionRecordsRepo) Create(ctx context.Context, record *model.ActionRecord) (*model.ActionRecord, error) {
	created := *record
	created.ID = int64(len(r.records) + 1)
	r.records = append(r.records, created)
	return &created, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestRecordsService_Reviews(t *testing.T) {
	ctx := context.Background()
	reviews := &fakeReviewRecordsRepo{}
	svc := NewRecordsService(reviews, &fakeActionRecordsRepo{})

	created, err := svc.CreateReview(ctx, "user-1", &model.PostReviewRequest{
		Lat: floatPtr(48.85), Lng: floatPtr(2.35), Criterion: "securite", Rating: floatPtr(7), City: "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "user-1", created.UserID)
	require.NotNil(t, created.City)
	assert.Nil(t, created.Comment)

	_, err = svc.CreateReview(ctx, "user-1", &model.PostReviewRequest{Lat: floatPtr(48.85), Criterion: "note", Rating: floatPtr(3)})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.ListReviews(ctx, "securite")
	require.NoError(t, err)
	assert.Equal(t, "securite", reviews.lastCriterion)
	assert.Equal(t, 200, reviews.lastLimit)
}

func TestRecordsService_Actions(t *testing.T) {
	ctx := context.Background()
	actions := &fakeActionRecordsRepo{}
	svc := NewRecordsService(&fakeReviewRecordsRepo{}, actions)

	created, err := svc.CreateAction(ctx, "user-1", &model.PostActionRequest{
		Theme: "proprete", Title: "Nettoyage", DateUTC: "2026-06-01T09:00:00Z", Lat: floatPtr(48.85), Lng: floatPtr(2.35),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), created.DateUTC)

	_, err = svc.CreateAction(ctx, "user-1", &model.PostActionRequest{Theme: "proprete", Title: "x", DateUTC: "2026-06-01"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateAction(ctx, "user-1", &model.PostActionRequest{
		Theme: "proprete", Title: "x", DateUTC: "demain", Lat: floatPtr(1), Lng: floatPtr(1),
	})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.ListActions(ctx, "2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), actions.lastAfter)

	_, err = svc.ListActions(ctx, "")
	require.NoError(t, err)
	assert.True(t, actions.lastAfter.IsZero())
}
