package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/infrastructure/database"
)

type SupabaseReviewRecordsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseReviewRecordsRepository(client *database.SupabaseClient) repository.ReviewRecordsRepository {
	return &SupabaseReviewRecordsRepository{
		client: client,
	}
}

// List 新しい順にレビューを取得（criterion が空なら全評価軸）
func (r *SupabaseReviewRecordsRepository) List(ctx context.Context, criterion string, limit int) ([]model.ReviewRecord, error) {
	query := r.client.GetClient().From("reviews").Select("*", "exact", false)
	if criterion != "" {
		query = query.Eq("criterion", criterion)
	}

	data, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("レビューデータの取得失敗: %w", err)
	}
	var records []model.ReviewRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("レビューデータのJSONアンマーシャル失敗: %w", err)
	}
	return records, nil
}

func (r *SupabaseReviewRecordsRepository) Create(ctx context.Context, record *model.ReviewRecord) (*model.ReviewRecord, error) {
	data, _, err := r.client.GetClient().From("reviews").
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("レビューデータの作成失敗: %w", err)
	}

	var created []model.ReviewRecord
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("レビューデータのJSONアンマーシャル失敗: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("作成したレビューが返却されませんでした")
	}
	return &created[0], nil
}
