package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"ViviCity-App/internal/domain/repository"
)

// DocumentStore はFirestoreのコレクションを repository.DocumentStore として公開する
type DocumentStore struct {
	client *firestore.Client
}

func NewDocumentStore(client *firestore.Client) repository.DocumentStore {
	return &DocumentStore{
		client: client,
	}
}

func (s *DocumentStore) FetchAll(ctx context.Context, collection string) ([]repository.Document, error) {
	snapshots, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("コレクション %s の取得に失敗: %w", collection, err)
	}

	docs := make([]repository.Document, 0, len(snapshots))
	for _, snap := range snapshots {
		docs = append(docs, repository.Document{
			ID:   snap.Ref.ID,
			Data: snap.Data(),
		})
	}
	return docs, nil
}

func (s *DocumentStore) Insert(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("コレクション %s への追加に失敗: %w", collection, err)
	}
	return ref.ID, nil
}
