package usecase

import (
	"context"
	"fmt"
	"time"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/domain/service"
	"ViviCity-App/internal/domain/strategy"

	"github.com/paulmach/orb/encoding/wkt"
)

// NearbyQuery は近傍検索の条件
type NearbyQuery struct {
	Center   model.LatLng
	RadiusKm float64
	Strategy string // 空の場合はユースケースごとの既定
	OwnerID  string // 空の場合は並べ替えない
	Theme    string // アクションのみ
}

type NearbyUseCase interface {
	NearbyReviews(ctx context.Context, q NearbyQuery) (*model.NearbyReviewsResponse, error)
	NearbyActions(ctx context.Context, q NearbyQuery) (*model.NearbyActionsResponse, error)
	CityAverage(ctx context.Context, ville string) (*model.CityAverageResponse, error)
}

type nearbyUseCaseImpl struct {
	dataset     *ReviewDatasetCache
	actionsRepo repository.ActionsRepository
	proximity   service.ProximityFilterService
	aggregation service.ZoneAggregationService
	observer    Observer
	now         func() time.Time

	defaultReviewRadiusKm float64
	defaultActionRadiusKm float64
}

func NewNearbyUseCase(
	dataset *ReviewDatasetCache,
	actionsRepo repository.ActionsRepository,
	proximity service.ProximityFilterService,
	aggregation service.ZoneAggregationService,
	observer Observer,
	reviewRadiusKm, actionRadiusKm float64,
) NearbyUseCase {
	return &nearbyUseCaseImpl{
		dataset:               dataset,
		actionsRepo:           actionsRepo,
		proximity:             proximity,
		aggregation:           aggregation,
		observer:              observerOrNoop(observer),
		now:                   time.Now,
		defaultReviewRadiusKm: reviewRadiusKm,
		defaultActionRadiusKm: actionRadiusKm,
	}
}

// NearbyReviews は既定で粗い判定（二乗距離）を使う
func (u *nearbyUseCaseImpl) NearbyReviews(ctx context.Context, q NearbyQuery) (*model.NearbyReviewsResponse, error) {
	s, err := u.buildStrategy(q, u.defaultReviewRadiusKm, strategy.NameCheapBoundingBox)
	if err != nil {
		return nil, err
	}

	snapshot, err := u.dataset.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("近傍レビューの取得に失敗: %w", err)
	}

	return &model.NearbyReviewsResponse{
		Reviews:    u.proximity.NearbyReviews(snapshot.Reviews, s, q.OwnerID),
		Strategy:   s.Name(),
		RadiusKm:   s.RadiusKm(),
		SearchArea: wkt.MarshalString(s.SearchArea().ToPolygon()),
	}, nil
}

// NearbyActions は既定でハーサイン距離を使い、今後のアクションだけを返す
func (u *nearbyUseCaseImpl) NearbyActions(ctx context.Context, q NearbyQuery) (*model.NearbyActionsResponse, error) {
	if q.Theme != "" {
		if _, ok := model.ThemeNameMap[q.Theme]; !ok {
			return nil, fmt.Errorf("%w: 不明なテーマです: %s", ErrInvalidInput, q.Theme)
		}
	}
	s, err := u.buildStrategy(q, u.defaultActionRadiusKm, strategy.NamePreciseRadius)
	if err != nil {
		return nil, err
	}

	actions, err := u.actionsRepo.GetAll(ctx)
	if err != nil {
		u.observer.ObserveFetchFailure(model.CollectionActions)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return &model.NearbyActionsResponse{
		Actions:    u.proximity.NearbyActions(actions, s, q.OwnerID, q.Theme, u.now()),
		RadiusKm:   s.RadiusKm(),
		Theme:      q.Theme,
		SearchArea: wkt.MarshalString(s.SearchArea().ToPolygon()),
	}, nil
}

func (u *nearbyUseCaseImpl) CityAverage(ctx context.Context, ville string) (*model.CityAverageResponse, error) {
	if ville == "" {
		return nil, fmt.Errorf("%w: ville は必須です", ErrInvalidInput)
	}
	snapshot, err := u.dataset.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("都市平均の計算に失敗: %w", err)
	}

	response := &model.CityAverageResponse{Ville: ville}
	if average, count, ok := u.aggregation.CityAverage(snapshot.Reviews, ville); ok {
		response.Average = &average
		response.Count = count
	}
	return response, nil
}

func (u *nearbyUseCaseImpl) buildStrategy(q NearbyQuery, defaultRadius float64, defaultStrategy string) (strategy.ProximityStrategy, error) {
	if !q.Center.IsValid() {
		return nil, fmt.Errorf("%w: 基準点の座標が不正です", ErrInvalidInput)
	}
	radius := q.RadiusKm
	if radius == 0 {
		radius = defaultRadius
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: 半径は正の値である必要があります", ErrInvalidInput)
	}
	name := q.Strategy
	if name == "" {
		name = defaultStrategy
	}
	s, ok := strategy.NewProximityStrategy(name, q.Center, radius)
	if !ok {
		return nil, fmt.Errorf("%w: 不明な近傍判定です: %s", ErrInvalidInput, name)
	}
	return s, nil
}
