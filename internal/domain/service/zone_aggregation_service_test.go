package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ViviCity-App/internal/domain/model"
)

func review(id string, lat, lng, note float64) model.Review {
	return model.Review{ID: id, Latitude: lat, Longitude: lng, Note: note, Securite: 5, Proprete: 5, Ville: "Paris"}
}

func TestAggregate_LowZoomMergesNearbyReviews(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 4),
		review("b", 48.8501, 2.3501, 2),
	}

	buckets := svc.Bucketize(reviews, 9)
	require.Len(t, buckets, 1)
	require.Contains(t, buckets, "48.9-2.4")

	zones := svc.Aggregate(reviews, model.CriterionNote, 9)
	require.Len(t, zones, 1)
	assert.Equal(t, 2, zones[0].Count)
	assert.Equal(t, 3.0, zones[0].Average)
	assert.Equal(t, 48.9, zones[0].Latitude)
	assert.Equal(t, 2.4, zones[0].Longitude)
	assert.Equal(t, model.BadgeOrange, zones[0].Badge)
}

func TestAggregate_HighZoomSeparatesReviews(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 4),
		review("b", 48.8512, 2.3512, 2),
	}

	zones := svc.Aggregate(reviews, model.CriterionNote, 14)
	require.Len(t, zones, 2)
	for _, z := range zones {
		assert.Equal(t, 1, z.Count)
	}
	assert.Equal(t, 4.0, zones[0].Average)
	assert.Equal(t, 2.0, zones[1].Average)
}

func TestBucketize_HigherZoomNeverMergesMore(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 4),
		review("b", 48.8512, 2.3512, 2),
		review("c", 48.862, 2.341, 3),
		review("d", 45.764, 4.8357, 5),
		review("e", 48.8566, 2.3522, 1),
	}

	prev := 0
	for zoom := 1; zoom <= 16; zoom++ {
		n := len(svc.Bucketize(reviews, zoom))
		assert.GreaterOrEqual(t, n, prev, "zoom=%d", zoom)
		prev = n
	}
}

func TestBucketize_InvalidCoordinatesExcluded(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("nan", math.NaN(), 2.35, 4),
		review("out", 95, 2.35, 4),
		review("ok", 0.01, 0.01, 4),
	}

	buckets := svc.Bucketize(reviews, 14)
	require.Len(t, buckets, 1)
	b, ok := buckets["0.01-0.01"]
	require.True(t, ok)
	require.Len(t, b.Reviews, 1)
	assert.Equal(t, "ok", b.Reviews[0].ID)

	// NaN のレコードは 0-0 に寄せられない
	_, zero := svc.Bucketize(reviews[:1], 1)["0-0"]
	assert.False(t, zero)
}

func TestAggregate_ClampKeepsAverageInRange(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 9),
		review("b", 48.85, 2.35, 7),
	}

	zones := svc.Aggregate(reviews, model.CriterionNote, 14)
	require.Len(t, zones, 1)
	assert.Equal(t, 5.0, zones[0].Average)

	low := []model.Review{
		{ID: "c", Latitude: 48.85, Longitude: 2.35, Securite: -4},
		{ID: "d", Latitude: 48.85, Longitude: 2.35, Securite: 2},
	}
	zones = svc.Aggregate(low, model.CriterionSecurite, 14)
	require.Len(t, zones, 1)
	assert.Equal(t, 1.0, zones[0].Average)
	assert.Equal(t, model.BadgeRed, zones[0].Badge)
}

func TestAggregate_ExcludePolicy(t *testing.T) {
	svc := NewZoneAggregationService(PolicyExclude)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 9),
		review("b", 48.85, 2.35, 3),
		review("c", 45.76, 4.83, -1),
	}

	zones := svc.Aggregate(reviews, model.CriterionNote, 14)
	require.Len(t, zones, 1)
	assert.Equal(t, 1, zones[0].Count)
	assert.Equal(t, 3.0, zones[0].Average)
}

func TestAggregate_EmptyInput(t *testing.T) {
	svc := NewZoneAggregationService("")
	zones := svc.Aggregate(nil, model.CriterionNote, 10)
	assert.NotNil(t, zones)
	assert.Empty(t, zones)
}

func TestAggregate_Idempotent(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 4),
		review("b", 48.8512, 2.3512, 2),
		review("c", 45.764, 4.8357, 5),
	}
	snapshot := append([]model.Review(nil), reviews...)

	first := svc.Aggregate(reviews, model.CriterionNote, 12)
	second := svc.Aggregate(reviews, model.CriterionNote, 12)
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, reviews)
}

func TestCityAverage(t *testing.T) {
	svc := NewZoneAggregationService(PolicyClamp)
	reviews := []model.Review{
		review("a", 48.85, 2.35, 4),
		review("b", 48.86, 2.34, 3),
		{ID: "c", Latitude: 45.76, Longitude: 4.83, Note: 1, Ville: "Lyon"},
		review("d", 48.87, 2.33, 7),
	}

	avg, count, ok := svc.CityAverage(reviews, "Paris")
	require.True(t, ok)
	assert.Equal(t, 3, count)
	assert.Equal(t, 4.0, avg)

	_, _, ok = svc.CityAverage(reviews, "Marseille")
	assert.False(t, ok)
}

func TestParseOutOfRangePolicy(t *testing.T) {
	assert.Equal(t, PolicyExclude, ParseOutOfRangePolicy("exclude"))
	assert.Equal(t, PolicyClamp, ParseOutOfRangePolicy("clamp"))
	assert.Equal(t, PolicyClamp, ParseOutOfRangePolicy("unknown"))
}
