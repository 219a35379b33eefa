package model

import "time"

// ReviewRecord RESTサーバーの reviews テーブルの行
type ReviewRecord struct {
	ID        int64     `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	City      *string   `json:"city"`
	Criterion string    `json:"criterion"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionRecord RESTサーバーの actions テーブルの行
type ActionRecord struct {
	ID          int64     `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Theme       string    `json:"theme"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DateUTC     time.Time `json:"date_utc"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostReviewRequest POST /reviews のボディ。必須項目の欠落を検出するためポインタで受ける
type PostReviewRequest struct {
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Criterion string   `json:"criterion"`
	Rating    *float64 `json:"rating"`
	Comment   string   `json:"comment"`
	City      string   `json:"city"`
}

// PostActionRequest POST /actions のボディ
type PostActionRequest struct {
	Theme       string   `json:"theme"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DateUTC     string   `json:"date_utc"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}
