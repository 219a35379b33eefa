package helper

import (
	"ViviCity-App/internal/domain/model"
	"math"
	"strconv"
)

const earthRadiusKm = 6371.0

// kmPerDegree は緯度1度あたりのおおよその距離 (km)
const kmPerDegree = 111.0

// HaversineDistance は2地点間の大円距離を計算する (km)
// NaN が入力された場合は NaN を返す
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceBetween は LatLng 同士の距離を計算する (km)
func DistanceBetween(p1, p2 model.LatLng) float64 {
	return HaversineDistance(p1.Lat, p1.Lng, p2.Lat, p2.Lng)
}

// KmToDegrees は半径(km)を度に換算する（粗いフィルタ用）
func KmToDegrees(km float64) float64 {
	return km / kmPerDegree
}

// PrecisionForZoom はズームレベルから丸め桁数を決める
func PrecisionForZoom(zoom int) int {
	switch {
	case zoom >= 13:
		return 3
	case zoom >= 11:
		return 2
	default:
		return 1
	}
}

// ZoomFromLongitudeDelta は表示範囲の経度幅からズームレベルを推定する (1〜20)
func ZoomFromLongitudeDelta(longitudeDelta float64) int {
	if longitudeDelta <= 0 || math.IsNaN(longitudeDelta) {
		return 20
	}
	zoom := int(math.Round(math.Log2(360 / longitudeDelta)))
	if zoom < 1 {
		return 1
	}
	if zoom > 20 {
		return 20
	}
	return zoom
}

// RoundCoord は座標を指定桁数で四捨五入する（0.5 は正の方向へ）
func RoundCoord(coord float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Floor(coord*factor+0.5) / factor
}

// BucketKey は丸め後の緯度経度からバケットキーを作る
func BucketKey(roundedLat, roundedLng float64) string {
	return formatCoord(roundedLat) + "-" + formatCoord(roundedLng)
}

func formatCoord(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
