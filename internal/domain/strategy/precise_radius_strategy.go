package strategy

import (
	"math"

	"ViviCity-App/internal/domain/helper"
	"ViviCity-App/internal/domain/model"

	"github.com/paulmach/orb"
)

// PreciseRadiusFilter はハーサイン距離で半径内かを判定する
type PreciseRadiusFilter struct {
	center   model.LatLng
	radiusKm float64
}

// NewPreciseRadiusFilter は新しいPreciseRadiusFilterインスタンスを作成
func NewPreciseRadiusFilter(center model.LatLng, radiusKm float64) *PreciseRadiusFilter {
	return &PreciseRadiusFilter{
		center:   center,
		radiusKm: radiusKm,
	}
}

func (f *PreciseRadiusFilter) Name() string {
	return NamePreciseRadius
}

func (f *PreciseRadiusFilter) RadiusKm() float64 {
	return f.radiusKm
}

// Contains はハーサイン距離が半径以下なら true
func (f *PreciseRadiusFilter) Contains(point model.LatLng) bool {
	return helper.DistanceBetween(f.center, point) <= f.radiusKm
}

// SearchArea は経度方向の幅を緯度で補正した矩形を返す
func (f *PreciseRadiusFilter) SearchArea() orb.Bound {
	dLat := helper.KmToDegrees(f.radiusKm)
	dLng := 180.0
	if cos := math.Cos(f.center.Lat * math.Pi / 180); cos > 1e-6 {
		dLng = math.Min(dLat/cos, 180)
	}
	return orb.Bound{
		Min: orb.Point{f.center.Lng - dLng, math.Max(f.center.Lat-dLat, -90)},
		Max: orb.Point{f.center.Lng + dLng, math.Min(f.center.Lat+dLat, 90)},
	}
}
