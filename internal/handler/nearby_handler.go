package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/usecase"
)

// NearbyHandler は近傍検索と都市平均のハンドラー
type NearbyHandler struct {
	nearbyUseCase usecase.NearbyUseCase
}

func NewNearbyHandler(nearbyUseCase usecase.NearbyUseCase) *NearbyHandler {
	return &NearbyHandler{nearbyUseCase: nearbyUseCase}
}

// NearbyReviews GET /reviews/nearby?lat=&lng=&radius_km=&strategy=
func (h *NearbyHandler) NearbyReviews(c *gin.Context) {
	q, err := parseNearbyQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.nearbyUseCase.NearbyReviews(c.Request.Context(), q)
	if err != nil {
		respondError(c, "近傍レビューの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// NearbyActions GET /actions/nearby?lat=&lng=&radius_km=&theme=
func (h *NearbyHandler) NearbyActions(c *gin.Context) {
	q, err := parseNearbyQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}
	q.Theme = c.Query("theme")

	response, err := h.nearbyUseCase.NearbyActions(c.Request.Context(), q)
	if err != nil {
		respondError(c, "近傍アクションの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// CityAverage GET /cities/:ville/average
func (h *NearbyHandler) CityAverage(c *gin.Context) {
	response, err := h.nearbyUseCase.CityAverage(c.Request.Context(), c.Param("ville"))
	if err != nil {
		respondError(c, "都市平均の計算に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func parseNearbyQuery(c *gin.Context) (usecase.NearbyQuery, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return usecase.NearbyQuery{}, &ValidationError{Field: "lat", Message: "緯度は必須です"}
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return usecase.NearbyQuery{}, &ValidationError{Field: "lng", Message: "経度は必須です"}
	}
	center := model.LatLng{Lat: lat, Lng: lng}
	if !center.IsValid() {
		return usecase.NearbyQuery{}, &ValidationError{Field: "lat,lng", Message: "緯度は-90から90、経度は-180から180の範囲で指定してください"}
	}

	q := usecase.NearbyQuery{
		Center:   center,
		Strategy: c.Query("strategy"),
		OwnerID:  c.GetString(ctxEmailKey),
	}
	if v := c.Query("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			return usecase.NearbyQuery{}, &ValidationError{Field: "radius_km", Message: "半径は正の数値で指定してください"}
		}
		q.RadiusKm = radius
	}
	return q, nil
}
