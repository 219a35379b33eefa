package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/application"
	"ViviCity-App/internal/domain/model"
)

// RecordsHandler は reviews / actions テーブルのRESTハンドラー
type RecordsHandler struct {
	recordsService application.RecordsService
}

func NewRecordsHandler(recordsService application.RecordsService) *RecordsHandler {
	return &RecordsHandler{recordsService: recordsService}
}

// ListReviews GET /reviews?criterion=
func (h *RecordsHandler) ListReviews(c *gin.Context) {
	records, err := h.recordsService.ListReviews(c.Request.Context(), c.Query("criterion"))
	if err != nil {
		respondError(c, "レビュー一覧の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateReview POST /reviews
func (h *RecordsHandler) CreateReview(c *gin.Context) {
	var req model.PostReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	record, err := h.recordsService.CreateReview(c.Request.Context(), c.GetString(ctxUserIDKey), &req)
	if err != nil {
		respondError(c, "レビューの登録に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListActions GET /actions?after=
func (h *RecordsHandler) ListActions(c *gin.Context) {
	records, err := h.recordsService.ListActions(c.Request.Context(), c.Query("after"))
	if err != nil {
		respondError(c, "アクション一覧の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateAction POST /actions
func (h *RecordsHandler) CreateAction(c *gin.Context) {
	var req model.PostActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	record, err := h.recordsService.CreateAction(c.Request.Context(), c.GetString(ctxUserIDKey), &req)
	if err != nil {
		respondError(c, "アクションの登録に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
