package repository

import (
	"context"

	"ViviCity-App/internal/domain/model"
)

// ReviewsRepository は地区評価（avis）の取得・登録を行う
type ReviewsRepository interface {
	GetAll(ctx context.Context) ([]model.Review, error)
	Create(ctx context.Context, review *model.Review) (string, error)
}

// ReviewRecordsRepository はRESTサーバーの reviews テーブルを扱う
type ReviewRecordsRepository interface {
	List(ctx context.Context, criterion string, limit int) ([]model.ReviewRecord, error)
	Create(ctx context.Context, record *model.ReviewRecord) (*model.ReviewRecord, error)
}
