package model

// GridCell 集計用の一時的なグリッドセル（永続化しない）
type GridCell struct {
	BucketKey string  `json:"bucket_key"` // 例: "48.9-2.4"
	Latitude  float64 `json:"latitude"`   // 丸め後の緯度
	Longitude float64 `json:"longitude"`  // 丸め後の経度
	Sum       float64 `json:"sum"`
	Count     int     `json:"count"`
}

// ZoneSummary 地図に描画するゾーンごとの平均
type ZoneSummary struct {
	Average   float64 `json:"average"` // 小数第1位で丸め
	Count     int     `json:"count"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Badge     string  `json:"badge"`
}

// ZonesResponse ゾーン一覧のレスポンス
type ZonesResponse struct {
	Criterion string        `json:"criterion"`
	Zoom      int           `json:"zoom"`
	Precision int           `json:"precision"`
	Zones     []ZoneSummary `json:"zones"`
}
