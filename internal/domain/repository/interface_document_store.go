package repository

import (
	"context"
)

// Document ドキュメントストアから取得した1件分のデータ
type Document struct {
	ID   string
	Data map[string]interface{}
}

// DocumentStore はドキュメントストア（Firestore）への最小限のアクセスを表す
// 集計ロジックはこのインターフェースを直接参照しない
type DocumentStore interface {
	// FetchAll はコレクションの全ドキュメントを取得する
	FetchAll(ctx context.Context, collection string) ([]Document, error)

	// Insert はドキュメントを追加し、採番されたIDを返す
	Insert(ctx context.Context, collection string, data map[string]interface{}) (string, error)
}
