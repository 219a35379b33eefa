package usecase

import (
	"context"
	"fmt"
	"log"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/domain/service"
)

type AuditUseCase interface {
	// Run はレビュー全件を監査し、異常を運用者へ通知する
	Run(ctx context.Context) (*model.AuditResponse, error)
}

type auditUseCaseImpl struct {
	reviewsRepo repository.ReviewsRepository
	auditor     service.AnomalyAuditService
	publisher   repository.AnomalyPublisher
	observer    Observer
}

func NewAuditUseCase(
	reviewsRepo repository.ReviewsRepository,
	auditor service.AnomalyAuditService,
	publisher repository.AnomalyPublisher,
	observer Observer,
) AuditUseCase {
	return &auditUseCaseImpl{
		reviewsRepo: reviewsRepo,
		auditor:     auditor,
		publisher:   publisher,
		observer:    observerOrNoop(observer),
	}
}

func (u *auditUseCaseImpl) Run(ctx context.Context) (*model.AuditResponse, error) {
	log.Printf("🔍 レビュー監査開始")

	// 監査は常に最新のデータで行う
	reviews, err := u.reviewsRepo.GetAll(ctx)
	if err != nil {
		u.observer.ObserveFetchFailure(model.CollectionReviews)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	reports := u.auditor.Audit(reviews)
	u.observer.ObserveAudit(len(reports))

	if u.publisher != nil {
		// 通知の失敗は監査結果に影響させない
		if err := u.publisher.Publish(ctx, reports); err != nil {
			log.Printf("⚠️ 異常レポートの通知に失敗: %v", err)
		}
	}

	log.Printf("✅ レビュー監査完了 (%d件中 %d件に異常)", len(reviews), len(reports))
	return &model.AuditResponse{
		Scanned: len(reviews),
		Reports: reports,
	}, nil
}
