package repository

import (
	"context"

	"ViviCity-App/internal/domain/model"
)

// AnomalyPublisher は監査で見つかった異常を運用者へ通知する
type AnomalyPublisher interface {
	Publish(ctx context.Context, reports []model.AnomalyReport) error
}
