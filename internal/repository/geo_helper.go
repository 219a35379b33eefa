package repository

import (
	"math"

	"github.com/paulmach/orb"
	"google.golang.org/genproto/googleapis/type/latlng"

	"ViviCity-App/internal/domain/model"
)

// missingPoint は座標が欠損していることを表す（0 には変換しない）
func missingPoint() orb.Point {
	return orb.Point{math.NaN(), math.NaN()}
}

// pointFromFields 緯度・経度フィールドから orb.Point を作成
// どちらかが数値でなければ NaN を返す
func pointFromFields(latValue, lngValue interface{}) orb.Point {
	lat, okLat := toFloat(latValue)
	lng, okLng := toFloat(lngValue)
	if !okLat || !okLng {
		return missingPoint()
	}
	return orb.Point{lng, lat}
}

// pointFromLocationValue Firestoreの location 値を orb.Point に変換
// GeoPoint とマップ形式 {latitude, longitude} の両方に対応する
func pointFromLocationValue(v interface{}) orb.Point {
	switch loc := v.(type) {
	case *latlng.LatLng:
		if loc == nil {
			return missingPoint()
		}
		return orb.Point{loc.GetLongitude(), loc.GetLatitude()}
	case map[string]interface{}:
		if lat, ok := loc["latitude"]; ok {
			return pointFromFields(lat, loc["longitude"])
		}
		return pointFromFields(loc["lat"], loc["lng"])
	}
	return missingPoint()
}

// PointToLatLng orb.Point を model.LatLng に変換
func PointToLatLng(point orb.Point) model.LatLng {
	return model.LatLng{
		Lat: point.Lat(),
		Lng: point.Lon(),
	}
}

// LatLngToGeoPoint model.LatLng を Firestore の GeoPoint に変換
func LatLngToGeoPoint(p model.LatLng) *latlng.LatLng {
	point := orb.Point{p.Lng, p.Lat}
	return &latlng.LatLng{
		Latitude:  point.Lat(),
		Longitude: point.Lon(),
	}
}
