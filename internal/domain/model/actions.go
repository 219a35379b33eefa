package model

import "time"

// Action 市民アクション（Firestore "actions" コレクションのドキュメント）
type Action struct {
	ID           string    `json:"id"`
	Theme        string    `json:"theme"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"` // 不正・欠損時はゼロ値
	Location     LatLng    `json:"location"`
	OwnerID      string    `json:"owner_id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// Coordinates GeoRecord の実装
func (a Action) Coordinates() LatLng {
	return a.Location
}

// Owner GeoRecord の実装
func (a Action) Owner() string {
	return a.OwnerID
}

// HasValidDate 日付が設定されているかチェック
func (a Action) HasValidDate() bool {
	return !a.Date.IsZero()
}

// CreateActionRequest アクション発案フォームのリクエスト
type CreateActionRequest struct {
	Title       string    `json:"titre"`
	Theme       string    `json:"theme"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    *Location `json:"location"`
}

// CreateActionResponse アクション発案のレスポンス
type CreateActionResponse struct {
	Status   string `json:"status"`
	ActionID string `json:"action_id"`
}

// NearbyActionsResponse 近傍アクション一覧のレスポンス
type NearbyActionsResponse struct {
	Actions    []Action `json:"actions"`
	RadiusKm   float64  `json:"radius_km"`
	Theme      string   `json:"theme,omitempty"`
	SearchArea string   `json:"search_area"` // WKT ポリゴン
}
