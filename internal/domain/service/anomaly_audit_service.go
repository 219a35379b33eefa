package service

import (
	"ViviCity-App/internal/domain/model"
	"log"
	"math"
)

// AnomalyAuditService は範囲外の評価値を検出してレポートするサービス
// レコードの変更や除外は行わない
type AnomalyAuditService interface {
	Audit(reviews []model.Review) []model.AnomalyReport
	Ranges() []model.FieldRange
}

type anomalyAuditService struct {
	ranges []model.FieldRange
}

// NewAnomalyAuditService は新しいAnomalyAuditServiceインスタンスを作成
// ranges が空なら既定の範囲を使う
func NewAnomalyAuditService(ranges []model.FieldRange) AnomalyAuditService {
	if len(ranges) == 0 {
		ranges = model.DefaultAuditRanges()
	}
	valid := make([]model.FieldRange, 0, len(ranges))
	for _, fr := range ranges {
		if _, ok := model.ParseCriterion(fr.Field); !ok {
			log.Printf("⚠️ 監査対象外のフィールドを無視します: %s", fr.Field)
			continue
		}
		valid = append(valid, fr)
	}
	return &anomalyAuditService{
		ranges: valid,
	}
}

func (s *anomalyAuditService) Ranges() []model.FieldRange {
	return s.ranges
}

func (s *anomalyAuditService) Audit(reviews []model.Review) []model.AnomalyReport {
	reports := make([]model.AnomalyReport, 0)
	for _, review := range reviews {
		var anomalies []model.Anomaly
		for _, fr := range s.ranges {
			v, ok := review.Value(model.Criterion(fr.Field))
			if !ok || math.IsNaN(v) || fr.Contains(v) {
				continue
			}
			anomalies = append(anomalies, model.Anomaly{Field: fr.Field, Value: v})
		}
		if len(anomalies) > 0 {
			reports = append(reports, model.AnomalyReport{
				RecordID:  review.ID,
				Anomalies: anomalies,
			})
		}
	}
	return reports
}
