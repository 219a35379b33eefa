package usecase

import (
	"context"
	"fmt"
	"sync"

	"ViviCity-App/internal/domain/helper"
	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/service"
)

type ZoneMapUseCase interface {
	// GetZones は評価軸とズームレベルに応じたゾーン平均を返す
	GetZones(ctx context.Context, criterion model.Criterion, zoom int) (*model.ZonesResponse, error)
}

// zoneCacheKey は集計結果のキャッシュキー
// 同じ精度のズームレベルは同じ結果になるため zoom ではなく precision を使う
type zoneCacheKey struct {
	criterion model.Criterion
	precision int
	version   uint64
}

type zoneMapUseCaseImpl struct {
	dataset     *ReviewDatasetCache
	aggregation service.ZoneAggregationService
	observer    Observer

	mu    sync.Mutex
	cache map[zoneCacheKey][]model.ZoneSummary
}

func NewZoneMapUseCase(dataset *ReviewDatasetCache, aggregation service.ZoneAggregationService, observer Observer) ZoneMapUseCase {
	return &zoneMapUseCaseImpl{
		dataset:     dataset,
		aggregation: aggregation,
		observer:    observerOrNoop(observer),
		cache:       make(map[zoneCacheKey][]model.ZoneSummary),
	}
}

func (u *zoneMapUseCaseImpl) GetZones(ctx context.Context, criterion model.Criterion, zoom int) (*model.ZonesResponse, error) {
	snapshot, err := u.dataset.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("ゾーン集計用データの取得に失敗: %w", err)
	}

	precision := helper.PrecisionForZoom(zoom)
	key := zoneCacheKey{criterion: criterion, precision: precision, version: snapshot.Version}

	zones, hit := u.lookup(key)
	u.observer.ObserveCache(hit)
	if !hit {
		zones = u.aggregation.Aggregate(snapshot.Reviews, criterion, zoom)
		u.store(key, zones)
		u.observer.ObserveAggregation(string(criterion), precision, len(zones))
	}

	return &model.ZonesResponse{
		Criterion: string(criterion),
		Zoom:      zoom,
		Precision: precision,
		Zones:     zones,
	}, nil
}

func (u *zoneMapUseCaseImpl) lookup(key zoneCacheKey) ([]model.ZoneSummary, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	zones, ok := u.cache[key]
	return zones, ok
}

// store は結果を保存し、古いバージョンのエントリを捨てる
func (u *zoneMapUseCaseImpl) store(key zoneCacheKey, zones []model.ZoneSummary) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for k := range u.cache {
		if k.version < key.version {
			delete(u.cache, k)
		}
	}
	u.cache[key] = zones
}
