package repository

import (
	"context"
	"log"
	"strings"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// LogAnomalyPublisher はMQTTが無効なときにログへ異常を出力する
type LogAnomalyPublisher struct{}

func NewLogAnomalyPublisher() repository.AnomalyPublisher {
	return &LogAnomalyPublisher{}
}

func (p *LogAnomalyPublisher) Publish(ctx context.Context, reports []model.AnomalyReport) error {
	for _, report := range reports {
		parts := make([]string, 0, len(report.Anomalies))
		for _, a := range report.Anomalies {
			parts = append(parts, a.Field+": "+formatValue(a.Value))
		}
		log.Printf("⚠️ 異常値 [%s]: %s", report.RecordID, strings.Join(parts, ", "))
	}
	return nil
}
