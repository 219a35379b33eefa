package model

import "math"

// LatLng 緯度経度を表す基本的な型（近傍検索の基準点などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsValid 緯度経度が有限かつ地球上の範囲内にあるかチェック
func (p LatLng) IsValid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Location リクエストボディで受け取る位置情報
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToLatLng Location を LatLng に変換
func (l *Location) ToLatLng() LatLng {
	if l == nil {
		return LatLng{Lat: math.NaN(), Lng: math.NaN()}
	}
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// GeoRecord 位置と所有者を持つレコード（レビュー・アクション共通）
type GeoRecord interface {
	Coordinates() LatLng
	Owner() string
}
