package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/domain/helper"
	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/usecase"
)

// MapHandler は地図画面（ゾーン表示・評価投稿・アクション発案）のハンドラー
type MapHandler struct {
	zoneMapUseCase    usecase.ZoneMapUseCase
	submissionUseCase usecase.SubmissionUseCase
}

func NewMapHandler(zoneMapUseCase usecase.ZoneMapUseCase, submissionUseCase usecase.SubmissionUseCase) *MapHandler {
	return &MapHandler{
		zoneMapUseCase:    zoneMapUseCase,
		submissionUseCase: submissionUseCase,
	}
}

// GetZones GET /map/zones?criterion=note&zoom=14
// zoom の代わりに longitude_delta（表示範囲の経度幅）も受け付ける
func (h *MapHandler) GetZones(c *gin.Context) {
	criterion, zoom, err := parseZoneQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.zoneMapUseCase.GetZones(c.Request.Context(), criterion, zoom)
	if err != nil {
		respondError(c, "ゾーンの集計に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func parseZoneQuery(c *gin.Context) (model.Criterion, int, error) {
	criterion, ok := model.ParseCriterion(c.DefaultQuery("criterion", string(model.CriterionNote)))
	if !ok {
		return "", 0, &ValidationError{Field: "criterion", Message: "note / securite / proprete のいずれかを指定してください"}
	}

	if v := c.Query("zoom"); v != "" {
		zoom, err := strconv.Atoi(v)
		if err != nil || zoom < 0 {
			return "", 0, &ValidationError{Field: "zoom", Message: "zoom は0以上の整数で指定してください"}
		}
		return criterion, zoom, nil
	}
	if v := c.Query("longitude_delta"); v != "" {
		delta, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", 0, &ValidationError{Field: "longitude_delta", Message: "longitude_delta は数値で指定してください"}
		}
		return criterion, helper.ZoomFromLongitudeDelta(delta), nil
	}
	return "", 0, &ValidationError{Field: "zoom", Message: "zoom または longitude_delta は必須です"}
}

// SubmitReview POST /map/reviews
func (h *MapHandler) SubmitReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.submissionUseCase.SubmitReview(c.Request.Context(), c.GetString(ctxEmailKey), &req)
	if err != nil {
		respondError(c, "評価の投稿に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// InitiateAction POST /map/actions
func (h *MapHandler) InitiateAction(c *gin.Context) {
	var req model.CreateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.submissionUseCase.InitiateAction(c.Request.Context(), c.GetString(ctxEmailKey), &req)
	if err != nil {
		respondError(c, "アクションの発案に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, response)
}
