package service

import (
	"ViviCity-App/internal/domain/helper"
	"ViviCity-App/internal/domain/model"
	"math"
	"sort"
)

// OutOfRangePolicy は範囲外の評価値の扱い
type OutOfRangePolicy string

const (
	// PolicyClamp は範囲外の値を最も近い境界に寄せて集計する
	PolicyClamp OutOfRangePolicy = "clamp"
	// PolicyExclude は範囲外の値を集計から除外する
	PolicyExclude OutOfRangePolicy = "exclude"
)

// ParseOutOfRangePolicy は設定値からポリシーを取得する（不明な値は clamp）
func ParseOutOfRangePolicy(s string) OutOfRangePolicy {
	if OutOfRangePolicy(s) == PolicyExclude {
		return PolicyExclude
	}
	return PolicyClamp
}

// Bucket は同じバケットキーに入ったレビューの集まり
type Bucket struct {
	Key       string
	Latitude  float64
	Longitude float64
	Reviews   []model.Review
}

// ZoneAggregationService はレビューをグリッドにまとめて平均を計算するサービス
// 呼び出し間で状態を持たず、毎回全件から再計算する
type ZoneAggregationService interface {
	// Bucketize はズームレベルに応じた精度でレビューをバケットに分ける
	Bucketize(reviews []model.Review, zoom int) map[string]*Bucket

	// Aggregate は評価軸ごとにバケットの平均を計算する
	Aggregate(reviews []model.Review, criterion model.Criterion, zoom int) []model.ZoneSummary

	// CityAverage は都市内のレビューの総合評価平均を計算する
	CityAverage(reviews []model.Review, ville string) (average float64, count int, ok bool)
}

type zoneAggregationService struct {
	policy OutOfRangePolicy
}

func NewZoneAggregationService(policy OutOfRangePolicy) ZoneAggregationService {
	if policy == "" {
		policy = PolicyClamp
	}
	return &zoneAggregationService{
		policy: policy,
	}
}

func (s *zoneAggregationService) Bucketize(reviews []model.Review, zoom int) map[string]*Bucket {
	precision := helper.PrecisionForZoom(zoom)
	buckets := make(map[string]*Bucket)

	for _, review := range reviews {
		// 座標が欠損・不正なレコードは 0 に寄せずに除外する
		if !review.HasValidCoordinates() {
			continue
		}
		lat := helper.RoundCoord(review.Latitude, precision)
		lng := helper.RoundCoord(review.Longitude, precision)
		key := helper.BucketKey(lat, lng)

		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Key: key, Latitude: lat, Longitude: lng}
			buckets[key] = b
		}
		b.Reviews = append(b.Reviews, review)
	}

	return buckets
}

func (s *zoneAggregationService) Aggregate(reviews []model.Review, criterion model.Criterion, zoom int) []model.ZoneSummary {
	cells := s.buildGridCells(s.Bucketize(reviews, zoom), criterion)

	summaries := make([]model.ZoneSummary, 0, len(cells))
	for _, cell := range cells {
		average := helper.RoundToOneDecimal(cell.Sum / float64(cell.Count))
		summaries = append(summaries, model.ZoneSummary{
			Average:   average,
			Count:     cell.Count,
			Latitude:  cell.Latitude,
			Longitude: cell.Longitude,
			Badge:     helper.BadgeColor(criterion, average),
		})
	}
	return summaries
}

// buildGridCells はバケットからグリッドセルを作る（キー順）
// 値が1つも残らないセルは作らない
func (s *zoneAggregationService) buildGridCells(buckets map[string]*Bucket, criterion model.Criterion) []model.GridCell {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	valueRange := criterion.RangeOf()
	cells := make([]model.GridCell, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		cell := model.GridCell{BucketKey: key, Latitude: b.Latitude, Longitude: b.Longitude}
		for _, review := range b.Reviews {
			v, ok := s.acceptValue(review, criterion, valueRange)
			if !ok {
				continue
			}
			cell.Sum += v
			cell.Count++
		}
		if cell.Count > 0 {
			cells = append(cells, cell)
		}
	}
	return cells
}

// acceptValue はポリシーに従って集計に使う値を返す
func (s *zoneAggregationService) acceptValue(review model.Review, criterion model.Criterion, r model.CriterionRange) (float64, bool) {
	v, ok := review.Value(criterion)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	if s.policy == PolicyExclude {
		return v, helper.InRange(v, r)
	}
	return helper.Clamp(v, r), true
}

func (s *zoneAggregationService) CityAverage(reviews []model.Review, ville string) (float64, int, bool) {
	noteRange := model.CriterionNote.RangeOf()
	var sum float64
	count := 0
	for _, review := range reviews {
		if review.Ville != ville {
			continue
		}
		v, ok := s.acceptValue(review, model.CriterionNote, noteRange)
		if !ok {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return helper.RoundToOneDecimal(sum / float64(count)), count, true
}
