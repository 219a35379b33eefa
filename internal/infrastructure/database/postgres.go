package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// PostgreSQLClient PostgreSQL直接接続クライアント（users テーブル用）
type PostgreSQLClient struct {
	DB *sql.DB
}

// NewPostgreSQLClient 新しいPostgreSQLクライアントを作成
func NewPostgreSQLClient(databaseURL string) (*PostgreSQLClient, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL環境変数が設定されていません")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL接続の初期化に失敗: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 接続テスト
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("PostgreSQLへの接続に失敗: %w", err)
	}

	return &PostgreSQLClient{
		DB: db,
	}, nil
}

// NewPostgreSQLClientWithRetry 接続に失敗した場合に指定回数リトライする
func NewPostgreSQLClientWithRetry(databaseURL string, maxRetries int, interval time.Duration) (*PostgreSQLClient, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		client, err := NewPostgreSQLClient(databaseURL)
		if err == nil {
			return client, nil
		}
		lastErr = err
		log.Printf("⚠️ PostgreSQL接続失敗 (%d/%d): %v", attempt, maxRetries, err)
		time.Sleep(interval)
	}
	return nil, fmt.Errorf("PostgreSQLへの接続を%d回試行しましたが失敗: %w", maxRetries, lastErr)
}

// Close データベース接続を閉じる
func (pc *PostgreSQLClient) Close() error {
	if pc.DB != nil {
		return pc.DB.Close()
	}
	return nil
}

// HealthCheck データベース接続のヘルスチェック
func (pc *PostgreSQLClient) HealthCheck() error {
	if pc.DB == nil {
		return fmt.Errorf("PostgreSQLクライアントが初期化されていません")
	}
	return pc.DB.Ping()
}
