package repository

import (
	"context"
	"fmt"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// DocumentActionsRepository はドキュメントストアの actions コレクションを扱う
type DocumentActionsRepository struct {
	store repository.DocumentStore
}

func NewDocumentActionsRepository(store repository.DocumentStore) repository.ActionsRepository {
	return &DocumentActionsRepository{
		store: store,
	}
}

func (r *DocumentActionsRepository) GetAll(ctx context.Context) ([]model.Action, error) {
	docs, err := r.store.FetchAll(ctx, model.CollectionActions)
	if err != nil {
		return nil, fmt.Errorf("アクションの取得失敗: %w", err)
	}

	actions := make([]model.Action, 0, len(docs))
	for _, doc := range docs {
		actions = append(actions, ActionFromDocument(doc))
	}
	return actions, nil
}

func (r *DocumentActionsRepository) Create(ctx context.Context, action *model.Action) (string, error) {
	id, err := r.store.Insert(ctx, model.CollectionActions, ActionToDocument(action))
	if err != nil {
		return "", fmt.Errorf("アクションの保存失敗: %w", err)
	}
	return id, nil
}

// ActionFromDocument ドキュメントを model.Action に変換
// 位置の欠損は NaN、日付の欠損はゼロ値として保持する（フィルタ側で除外）
func ActionFromDocument(doc repository.Document) model.Action {
	d := doc.Data

	theme := toString(d["theme"])
	if theme == "" {
		theme = model.ThemeAutre
	}

	return model.Action{
		ID:           doc.ID,
		Theme:        theme,
		Type:         toString(d["type"]),
		Title:        toString(d["titre"]),
		Description:  toString(d["description"]),
		Date:         toTime(d["date"]),
		Location:     PointToLatLng(pointFromLocationValue(d["location"])),
		OwnerID:      toString(d["email"]),
		Participants: toStringSlice(d["participants"]),
		CreatedAt:    toTime(d["timestamp"]),
	}
}

// ActionToDocument model.Action をドキュメント形式に変換
func ActionToDocument(action *model.Action) map[string]interface{} {
	participants := action.Participants
	if participants == nil {
		participants = []string{}
	}
	return map[string]interface{}{
		"titre":        action.Title,
		"theme":        action.Theme,
		"type":         action.Type,
		"description":  action.Description,
		"date":         action.Date,
		"location":     LatLngToGeoPoint(action.Location),
		"email":        action.OwnerID,
		"timestamp":    action.CreatedAt,
		"participants": participants,
	}
}
