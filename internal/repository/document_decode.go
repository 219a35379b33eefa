package repository

import (
	"strconv"
	"strings"
	"time"
)

// toFloat ドキュメントの数値フィールドを float64 に変換する
// 文字列で保存された数値も受け付ける
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toOptionalString(v interface{}) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// toTime Timestamp または RFC3339 文字列を time.Time に変換する
// 変換できない場合はゼロ値
func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func toStringSlice(v interface{}) []string {
	if strs, ok := v.([]string); ok {
		return append([]string{}, strs...)
	}
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
