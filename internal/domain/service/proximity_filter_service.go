package service

import (
	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/strategy"
	"time"
)

// ProximityFilterService は基準点の近傍にあるレコードを選び、自分のものを先頭に並べるサービス
type ProximityFilterService interface {
	// NearbyReviews は近傍のレビューを返す（ownerID のレビューが先頭）
	NearbyReviews(reviews []model.Review, s strategy.ProximityStrategy, ownerID string) []model.Review

	// NearbyActions は近傍の今後のアクションを返す（theme が空なら全テーマ）
	NearbyActions(actions []model.Action, s strategy.ProximityStrategy, ownerID, theme string, now time.Time) []model.Action
}

type proximityFilterService struct{}

func NewProximityFilterService() ProximityFilterService {
	return &proximityFilterService{}
}

func (p *proximityFilterService) NearbyReviews(reviews []model.Review, s strategy.ProximityStrategy, ownerID string) []model.Review {
	return OrderOwnedFirst(FilterNearby(reviews, s), ownerID)
}

func (p *proximityFilterService) NearbyActions(actions []model.Action, s strategy.ProximityStrategy, ownerID, theme string, now time.Time) []model.Action {
	upcoming := FilterUpcomingActions(actions, now)
	nearby := FilterNearby(FilterByTheme(upcoming, theme), s)
	return OrderOwnedFirst(nearby, ownerID)
}

// FilterNearby は座標が有効で戦略の範囲内にあるレコードだけを取得順のまま返す
func FilterNearby[T model.GeoRecord](records []T, s strategy.ProximityStrategy) []T {
	result := make([]T, 0, len(records))
	for _, r := range records {
		point := r.Coordinates()
		if !point.IsValid() {
			continue
		}
		if s.Contains(point) {
			result = append(result, r)
		}
	}
	return result
}

// OrderOwnedFirst は ownerID のレコードを先頭に移す
// 各グループ内の相対順序は保たれる
func OrderOwnedFirst[T model.GeoRecord](records []T, ownerID string) []T {
	if ownerID == "" {
		return records
	}
	mine := make([]T, 0, len(records))
	others := make([]T, 0, len(records))
	for _, r := range records {
		if r.Owner() == ownerID {
			mine = append(mine, r)
		} else {
			others = append(others, r)
		}
	}
	return append(mine, others...)
}

// FilterUpcomingActions は日付が有効で now 以降のアクションだけを返す
func FilterUpcomingActions(actions []model.Action, now time.Time) []model.Action {
	result := make([]model.Action, 0, len(actions))
	for _, a := range actions {
		if !a.HasValidDate() || a.Date.Before(now) {
			continue
		}
		result = append(result, a)
	}
	return result
}

// FilterByTheme はテーマが一致するアクションだけを返す
func FilterByTheme(actions []model.Action, theme string) []model.Action {
	if theme == "" {
		return actions
	}
	result := make([]model.Action, 0, len(actions))
	for _, a := range actions {
		if a.Theme == theme {
			result = append(result, a)
		}
	}
	return result
}
