package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ViviCity-App/internal/domain/helper"
	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// maxActionHorizonMonths はアクション日付の上限（6か月先）
const maxActionHorizonMonths = 6

type SubmissionUseCase interface {
	// SubmitReview は地区評価を検証してドキュメントストアに保存する
	SubmitReview(ctx context.Context, ownerID string, req *model.CreateReviewRequest) (*model.CreateReviewResponse, error)

	// InitiateAction は市民アクションを検証してドキュメントストアに保存する
	InitiateAction(ctx context.Context, ownerID string, req *model.CreateActionRequest) (*model.CreateActionResponse, error)
}

type submissionUseCaseImpl struct {
	reviewsRepo repository.ReviewsRepository
	actionsRepo repository.ActionsRepository
	dataset     *ReviewDatasetCache
	now         func() time.Time
}

func NewSubmissionUseCase(
	reviewsRepo repository.ReviewsRepository,
	actionsRepo repository.ActionsRepository,
	dataset *ReviewDatasetCache,
) SubmissionUseCase {
	return &submissionUseCaseImpl{
		reviewsRepo: reviewsRepo,
		actionsRepo: actionsRepo,
		dataset:     dataset,
		now:         time.Now,
	}
}

func (u *submissionUseCaseImpl) SubmitReview(ctx context.Context, ownerID string, req *model.CreateReviewRequest) (*model.CreateReviewResponse, error) {
	if err := validateReviewRequest(req); err != nil {
		return nil, err
	}

	review := &model.Review{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Note:      *req.Note,
		Securite:  float64(*req.Securite),
		Proprete:  float64(*req.Proprete),
		Ville:     strings.TrimSpace(req.Ville),
		Quartier:  strings.TrimSpace(req.Quartier),
		Adresse:   strings.TrimSpace(req.Adresse),
		OwnerID:   ownerID,
		CreatedAt: u.now().UTC(),
	}
	if c := strings.TrimSpace(req.Commentaire); c != "" {
		review.Commentaire = &c
	}

	id, err := u.reviewsRepo.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("レビューの投稿に失敗: %w", err)
	}

	// 新しいデータを集計に反映させる
	if u.dataset != nil {
		u.dataset.Invalidate()
	}

	return &model.CreateReviewResponse{Status: "success", ReviewID: id}, nil
}

func (u *submissionUseCaseImpl) InitiateAction(ctx context.Context, ownerID string, req *model.CreateActionRequest) (*model.CreateActionResponse, error) {
	now := u.now()
	if err := validateActionRequest(req, now); err != nil {
		return nil, err
	}

	action := &model.Action{
		Theme:        req.Theme,
		Type:         req.Type,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Date:         req.Date.UTC(),
		Location:     req.Location.ToLatLng(),
		OwnerID:      ownerID,
		Participants: []string{},
		CreatedAt:    now.UTC(),
	}

	id, err := u.actionsRepo.Create(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("アクションの登録に失敗: %w", err)
	}
	return &model.CreateActionResponse{Status: "success", ActionID: id}, nil
}

func validateReviewRequest(req *model.CreateReviewRequest) error {
	if req.Latitude == nil || req.Longitude == nil {
		return fmt.Errorf("%w: 位置情報は必須です", ErrInvalidInput)
	}
	if !(model.LatLng{Lat: *req.Latitude, Lng: *req.Longitude}).IsValid() {
		return fmt.Errorf("%w: 位置情報が範囲外です", ErrInvalidInput)
	}
	if req.Note == nil || req.Securite == nil || req.Proprete == nil {
		return fmt.Errorf("%w: note / securite / proprete は必須です", ErrInvalidInput)
	}
	if !helper.InRange(*req.Note, model.CriterionNote.RangeOf()) {
		return fmt.Errorf("%w: note は0から5の範囲で指定してください", ErrInvalidInput)
	}
	if !helper.InRange(float64(*req.Securite), model.CriterionSecurite.RangeOf()) {
		return fmt.Errorf("%w: securite は0から10の範囲で指定してください", ErrInvalidInput)
	}
	if !helper.InRange(float64(*req.Proprete), model.CriterionProprete.RangeOf()) {
		return fmt.Errorf("%w: proprete は0から10の範囲で指定してください", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Ville) == "" {
		return fmt.Errorf("%w: ville は必須です", ErrInvalidInput)
	}
	return nil
}

// validateActionRequest は日付が明日から6か月以内かも確認する
func validateActionRequest(req *model.CreateActionRequest, now time.Time) error {
	if strings.TrimSpace(req.Title) == "" || req.Theme == "" || req.Type == "" || req.Location == nil {
		return fmt.Errorf("%w: titre / theme / type / location は必須です", ErrInvalidInput)
	}
	if _, ok := model.ActionTypeMap[req.Theme]; !ok {
		return fmt.Errorf("%w: 不明なテーマです: %s", ErrInvalidInput, req.Theme)
	}
	if !model.IsValidActionType(req.Theme, req.Type) {
		return fmt.Errorf("%w: テーマ %s に存在しない種別です: %s", ErrInvalidInput, req.Theme, req.Type)
	}
	if !req.Location.ToLatLng().IsValid() {
		return fmt.Errorf("%w: 位置情報が範囲外です", ErrInvalidInput)
	}

	minDate := now.Add(24 * time.Hour)
	maxDate := now.AddDate(0, maxActionHorizonMonths, 0)
	if req.Date.Before(minDate) || req.Date.After(maxDate) {
		return fmt.Errorf("%w: 日付は明日から6か月以内で指定してください", ErrInvalidInput)
	}
	return nil
}
