package model

// FieldRange 監査対象フィールドの有効範囲
type FieldRange struct {
	Field string  `json:"field" yaml:"field"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// Contains 値が範囲内かチェック
func (fr FieldRange) Contains(v float64) bool {
	return v >= fr.Min && v <= fr.Max
}

// Anomaly 範囲外の値
type Anomaly struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

// AnomalyReport レコード単位の異常レポート
type AnomalyReport struct {
	RecordID  string    `json:"record_id"`
	Anomalies []Anomaly `json:"anomalies"`
}

// AuditResponse 監査結果のレスポンス
type AuditResponse struct {
	Scanned int             `json:"scanned"`
	Reports []AnomalyReport `json:"reports"`
}
