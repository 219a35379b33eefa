package strategy

import (
	"ViviCity-App/internal/domain/model"

	"github.com/paulmach/orb"
)

// 近傍判定の戦略名
const (
	NamePreciseRadius    = "precise_radius"
	NameCheapBoundingBox = "cheap_bounding_box"
)

// ProximityStrategy は基準点からの近さを判定する戦略のインターフェース
type ProximityStrategy interface {
	// 戦略名を取得
	Name() string

	// 半径 (km) を取得
	RadiusKm() float64

	// 座標が基準点の近傍にあるか判定する
	// 座標の妥当性チェックは呼び出し側で済ませておくこと
	Contains(point model.LatLng) bool

	// 判定範囲を囲む矩形（経度, 緯度の度単位）
	SearchArea() orb.Bound
}

// NewProximityStrategy は戦略名から戦略を生成する
// 未知の名前の場合は ok=false を返す
func NewProximityStrategy(name string, center model.LatLng, radiusKm float64) (ProximityStrategy, bool) {
	switch name {
	case NamePreciseRadius:
		return NewPreciseRadiusFilter(center, radiusKm), true
	case NameCheapBoundingBox:
		return NewCheapBoundingBoxFilter(center, radiusKm), true
	}
	return nil, false
}
