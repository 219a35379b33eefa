package repository

import (
	"context"
	"fmt"
	"log"
	"math"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// DocumentReviewsRepository はドキュメントストアの avis コレクションを扱う
type DocumentReviewsRepository struct {
	store repository.DocumentStore
}

func NewDocumentReviewsRepository(store repository.DocumentStore) repository.ReviewsRepository {
	return &DocumentReviewsRepository{
		store: store,
	}
}

func (r *DocumentReviewsRepository) GetAll(ctx context.Context) ([]model.Review, error) {
	docs, err := r.store.FetchAll(ctx, model.CollectionReviews)
	if err != nil {
		return nil, fmt.Errorf("レビューの取得失敗: %w", err)
	}

	reviews := make([]model.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, ReviewFromDocument(doc))
	}
	return reviews, nil
}

func (r *DocumentReviewsRepository) Create(ctx context.Context, review *model.Review) (string, error) {
	id, err := r.store.Insert(ctx, model.CollectionReviews, ReviewToDocument(review))
	if err != nil {
		return "", fmt.Errorf("レビューの保存失敗: %w", err)
	}
	return id, nil
}

// ReviewFromDocument ドキュメントを model.Review に変換
// 座標・評価値の欠損や数値でない値は NaN として保持し、保存値は丸めない
func ReviewFromDocument(doc repository.Document) model.Review {
	d := doc.Data
	point := pointFromFields(d["latitude"], d["longitude"])

	return model.Review{
		ID:          doc.ID,
		Latitude:    point.Lat(),
		Longitude:   point.Lon(),
		Note:        ratingFromField(doc.ID, "note", d["note"]),
		Securite:    ratingFromField(doc.ID, "securite", d["securite"]),
		Proprete:    ratingFromField(doc.ID, "proprete", d["proprete"]),
		Commentaire: toOptionalString(d["commentaire"]),
		Ville:       toString(d["ville"]),
		Quartier:    toString(d["quartier"]),
		Adresse:     toString(d["adresse"]),
		OwnerID:     toString(d["email"]),
		CreatedAt:   toTime(d["timestamp"]),
	}
}

func ratingFromField(id, field string, v interface{}) float64 {
	f, ok := toFloat(v)
	if !ok {
		log.Printf("⚠️ レビュー %s の %s が数値ではありません: %v", id, field, v)
		return math.NaN()
	}
	return f
}

// ReviewToDocument model.Review をドキュメント形式に変換
func ReviewToDocument(review *model.Review) map[string]interface{} {
	return map[string]interface{}{
		"latitude":    review.Latitude,
		"longitude":   review.Longitude,
		"note":        review.Note,
		"securite":    review.Securite,
		"proprete":    review.Proprete,
		"commentaire": review.GetCommentaire(),
		"ville":       review.Ville,
		"quartier":    review.Quartier,
		"adresse":     review.Adresse,
		"email":       review.OwnerID,
		"timestamp":   review.CreatedAt,
	}
}
