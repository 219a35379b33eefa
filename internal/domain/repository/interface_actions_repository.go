package repository

import (
	"context"
	"time"

	"ViviCity-App/internal/domain/model"
)

// ActionsRepository は市民アクションの取得・登録を行う
type ActionsRepository interface {
	GetAll(ctx context.Context) ([]model.Action, error)
	Create(ctx context.Context, action *model.Action) (string, error)
}

// ActionRecordsRepository はRESTサーバーの actions テーブルを扱う
type ActionRecordsRepository interface {
	// List は after 以降のアクションを日付の昇順で返す（after がゼロ値なら全件）
	List(ctx context.Context, after time.Time, limit int) ([]model.ActionRecord, error)
	Create(ctx context.Context, record *model.ActionRecord) (*model.ActionRecord, error)
}
