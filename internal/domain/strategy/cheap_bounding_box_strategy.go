package strategy

import (
	"ViviCity-App/internal/domain/helper"
	"ViviCity-App/internal/domain/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// CheapBoundingBoxFilter は度単位の二乗距離で近傍を粗く判定する
// 1度 = 111km 換算のため、高緯度や大きな半径では精度が落ちる
type CheapBoundingBoxFilter struct {
	center        orb.Point
	radiusKm      float64
	radiusDegSqrd float64
}

// NewCheapBoundingBoxFilter は新しいCheapBoundingBoxFilterインスタンスを作成
func NewCheapBoundingBoxFilter(center model.LatLng, radiusKm float64) *CheapBoundingBoxFilter {
	radiusDeg := helper.KmToDegrees(radiusKm)
	return &CheapBoundingBoxFilter{
		center:        orb.Point{center.Lng, center.Lat},
		radiusKm:      radiusKm,
		radiusDegSqrd: radiusDeg * radiusDeg,
	}
}

func (f *CheapBoundingBoxFilter) Name() string {
	return NameCheapBoundingBox
}

func (f *CheapBoundingBoxFilter) RadiusKm() float64 {
	return f.radiusKm
}

// Contains は dLat² + dLng² <= radiusDeg² なら true
func (f *CheapBoundingBoxFilter) Contains(point model.LatLng) bool {
	p := orb.Point{point.Lng, point.Lat}
	return planar.DistanceSquared(f.center, p) <= f.radiusDegSqrd
}

// SearchArea は中心を半径分だけ広げた矩形
func (f *CheapBoundingBoxFilter) SearchArea() orb.Bound {
	return orb.Point{f.center.Lon(), f.center.Lat()}.Bound().Pad(helper.KmToDegrees(f.radiusKm))
}
