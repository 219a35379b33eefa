package model

import (
	"encoding/json"
	"math"
	"time"
)

// Review 地区評価（Firestore "avis" コレクションのドキュメント）
type Review struct {
	ID          string    `json:"id"`
	Latitude    float64   `json:"latitude"`  // 欠損時は NaN（0 には変換しない）
	Longitude   float64   `json:"longitude"` // 欠損時は NaN
	Note        float64   `json:"note"`      // 総合評価 0〜5、欠損時は NaN
	Securite    float64   `json:"securite"`  // 安全性 0〜10、保存値をそのまま保持
	Proprete    float64   `json:"proprete"`  // 清潔さ 0〜10、保存値をそのまま保持
	Commentaire *string   `json:"commentaire,omitempty"`
	Ville       string    `json:"ville"`
	Quartier    string    `json:"quartier"`
	Adresse     string    `json:"adresse,omitempty"`
	OwnerID     string    `json:"owner_id"` // 投稿者のメールアドレス
	CreatedAt   time.Time `json:"created_at"`
}

// Coordinates GeoRecord の実装
func (r Review) Coordinates() LatLng {
	return LatLng{Lat: r.Latitude, Lng: r.Longitude}
}

// Owner GeoRecord の実装
func (r Review) Owner() string {
	return r.OwnerID
}

// HasValidCoordinates 空間処理に使える座標を持っているか
func (r Review) HasValidCoordinates() bool {
	return r.Coordinates().IsValid()
}

// Value 評価軸に対応する値を取得する
func (r Review) Value(criterion Criterion) (float64, bool) {
	switch criterion {
	case CriterionNote:
		return r.Note, true
	case CriterionSecurite:
		return r.Securite, true
	case CriterionProprete:
		return r.Proprete, true
	}
	return 0, false
}

// MarshalJSON は NaN の数値を null として出力する
func (r Review) MarshalJSON() ([]byte, error) {
	type review Review
	return json.Marshal(struct {
		review
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Note      *float64 `json:"note"`
		Securite  *float64 `json:"securite"`
		Proprete  *float64 `json:"proprete"`
	}{
		review:    review(r),
		Latitude:  finiteOrNil(r.Latitude),
		Longitude: finiteOrNil(r.Longitude),
		Note:      finiteOrNil(r.Note),
		Securite:  finiteOrNil(r.Securite),
		Proprete:  finiteOrNil(r.Proprete),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// GetCommentaire コメントが存在する場合は値を、存在しない場合は空文字列を返す
func (r Review) GetCommentaire() string {
	if r.Commentaire != nil {
		return *r.Commentaire
	}
	return ""
}

// CreateReviewRequest 評価投稿フォームのリクエスト
type CreateReviewRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Note        *float64 `json:"note"`
	Securite    *int     `json:"securite"`
	Proprete    *int     `json:"proprete"`
	Commentaire string   `json:"commentaire"`
	Ville       string   `json:"ville"`
	Quartier    string   `json:"quartier"`
	Adresse     string   `json:"adresse"`
}

// CreateReviewResponse 評価投稿のレスポンス
type CreateReviewResponse struct {
	Status   string `json:"status"`
	ReviewID string `json:"review_id"`
}

// NearbyReviewsResponse 近傍レビュー一覧のレスポンス
type NearbyReviewsResponse struct {
	Reviews    []Review `json:"reviews"`
	Strategy   string   `json:"strategy"`
	RadiusKm   float64  `json:"radius_km"`
	SearchArea string   `json:"search_area"` // WKT ポリゴン
}

// CityAverageResponse 都市ごとの平均評価
type CityAverageResponse struct {
	Ville   string   `json:"ville"`
	Average *float64 `json:"average"` // レビューがない場合は null
	Count   int      `json:"count"`
}
