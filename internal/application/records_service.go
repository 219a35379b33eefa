package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// recordsListLimit 一覧取得の最大件数
const recordsListLimit = 200

// RecordsService RESTサーバーの reviews / actions テーブルを扱うサービス
type RecordsService interface {
	// ListReviews 新しい順にレビューを取得（criterion が空なら全評価軸）
	ListReviews(ctx context.Context, criterion string) ([]model.ReviewRecord, error)

	// CreateReview レビューを登録
	CreateReview(ctx context.Context, userID string, req *model.PostReviewRequest) (*model.ReviewRecord, error)

	// ListActions 日付の昇順でアクションを取得（after が空なら全件）
	ListActions(ctx context.Context, after string) ([]model.ActionRecord, error)

	// CreateAction アクションを登録
	CreateAction(ctx context.Context, userID string, req *model.PostActionRequest) (*model.ActionRecord, error)
}

type recordsServiceImpl struct {
	reviewsRepo repository.ReviewRecordsRepository
	actionsRepo repository.ActionRecordsRepository
	now         func() time.Time
}

func NewRecordsService(reviewsRepo repository.ReviewRecordsRepository, actionsRepo repository.ActionRecordsRepository) RecordsService {
	return &recordsServiceImpl{
		reviewsRepo: reviewsRepo,
		actionsRepo: actionsRepo,
		now:         time.Now,
	}
}

func (s *recordsServiceImpl) ListReviews(ctx context.Context, criterion string) ([]model.ReviewRecord, error) {
	records, err := s.reviewsRepo.List(ctx, strings.TrimSpace(criterion), recordsListLimit)
	if err != nil {
		return nil, fmt.Errorf("レビュー一覧の取得に失敗: %w", err)
	}
	return records, nil
}

func (s *recordsServiceImpl) CreateReview(ctx context.Context, userID string, req *model.PostReviewRequest) (*model.ReviewRecord, error) {
	if req.Lat == nil || req.Lng == nil || strings.TrimSpace(req.Criterion) == "" || req.Rating == nil {
		return nil, ErrMissingFields
	}

	record := &model.ReviewRecord{
		UserID:    userID,
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		City:      optionalString(req.City),
		Criterion: strings.TrimSpace(req.Criterion),
		Rating:    *req.Rating,
		Comment:   optionalString(req.Comment),
		CreatedAt: s.now().UTC(),
	}
	created, err := s.reviewsRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("レビューの登録に失敗: %w", err)
	}
	return created, nil
}

func (s *recordsServiceImpl) ListActions(ctx context.Context, after string) ([]model.ActionRecord, error) {
	var afterTime time.Time
	if after != "" {
		t, ok := parseRecordDate(after)
		if !ok {
			return nil, fmt.Errorf("%w: after の日付形式が不正です", ErrMissingFields)
		}
		afterTime = t
	}

	records, err := s.actionsRepo.List(ctx, afterTime, recordsListLimit)
	if err != nil {
		return nil, fmt.Errorf("アクション一覧の取得に失敗: %w", err)
	}
	return records, nil
}

func (s *recordsServiceImpl) CreateAction(ctx context.Context, userID string, req *model.PostActionRequest) (*model.ActionRecord, error) {
	if strings.TrimSpace(req.Theme) == "" || strings.TrimSpace(req.Title) == "" || req.DateUTC == "" || req.Lat == nil || req.Lng == nil {
		return nil, ErrMissingFields
	}
	date, ok := parseRecordDate(req.DateUTC)
	if !ok {
		return nil, fmt.Errorf("%w: date_utc の日付形式が不正です", ErrMissingFields)
	}

	record := &model.ActionRecord{
		UserID:      userID,
		Theme:       strings.TrimSpace(req.Theme),
		Title:       strings.TrimSpace(req.Title),
		Description: optionalString(req.Description),
		DateUTC:     date.UTC(),
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		CreatedAt:   s.now().UTC(),
	}
	created, err := s.actionsRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("アクションの登録に失敗: %w", err)
	}
	return created, nil
}

// parseRecordDate RFC3339 と日付のみ (YYYY-MM-DD) を受け付ける
func parseRecordDate(v string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
