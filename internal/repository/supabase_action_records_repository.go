package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/infrastructure/database"
)

type SupabaseActionRecordsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseActionRecordsRepository(client *database.SupabaseClient) repository.ActionRecordsRepository {
	return &SupabaseActionRecordsRepository{
		client: client,
	}
}

// List after 以降のアクションを日付の昇順で取得
func (r *SupabaseActionRecordsRepository) List(ctx context.Context, after time.Time, limit int) ([]model.ActionRecord, error) {
	query := r.client.GetClient().From("actions").Select("*", "exact", false)
	if !after.IsZero() {
		query = query.Gte("date_utc", after.UTC().Format(time.RFC3339))
	}

	data, _, err := query.
		Order("date_utc", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("アクションデータの取得失敗: %w", err)
	}
	var records []model.ActionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("アクションデータのJSONアンマーシャル失敗: %w", err)
	}
	return records, nil
}

func (r *SupabaseActionRecordsRepository) Create(ctx context.Context, record *model.ActionRecord) (*model.ActionRecord, error) {
	data, _, err := r.client.GetClient().From("actions").
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("アクションデータの作成失敗: %w", err)
	}

	var created []model.ActionRecord
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("アクションデータのJSONアンマーシャル失敗: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("作成したアクションが返却されませんでした")
	}
	return &created[0], nil
}
