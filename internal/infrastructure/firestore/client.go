package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient はFirestoreクライアントを作成する
// credentialsFile が存在しない場合はデフォルト認証を使う
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FirestoreのプロジェクトIDが設定されていません")
	}

	var client *firestore.Client
	var err error

	// Cloud Run環境の検出
	isCloudRun := os.Getenv("K_SERVICE") != ""

	if isCloudRun || credentialsFile == "" {
		log.Printf("☁️ デフォルト認証を使用")
		client, err = firestore.NewClient(ctx, projectID)
	} else if _, statErr := os.Stat(credentialsFile); statErr != nil {
		log.Printf("⚠️ Credentials file not found: %s, trying with default authentication", credentialsFile)
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		log.Printf("📄 Using credentials file: %s", credentialsFile)
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	log.Printf("✅ Firestore client initialized for project: %s", projectID)
	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
