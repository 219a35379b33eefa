package helper

import (
	"ViviCity-App/internal/domain/model"
	"math"
)

// Clamp は値を評価軸の範囲に収める
func Clamp(value float64, r model.CriterionRange) float64 {
	return math.Min(r.Max, math.Max(r.Min, value))
}

// InRange は値が評価軸の範囲内かチェック
func InRange(value float64, r model.CriterionRange) bool {
	return value >= r.Min && value <= r.Max
}

// RoundToOneDecimal は小数第1位で丸める
func RoundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// BadgeColor は平均値からバッジの色を決める
func BadgeColor(criterion model.Criterion, average float64) string {
	if criterion == model.CriterionNote {
		switch {
		case average >= 4:
			return model.BadgeGreen
		case average >= 2.5:
			return model.BadgeOrange
		}
		return model.BadgeRed
	}
	switch {
	case average >= 8:
		return model.BadgeGreen
	case average >= 5:
		return model.BadgeOrange
	}
	return model.BadgeRed
}
