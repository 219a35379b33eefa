package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/application"
)

// RouterDeps はルーターが必要とするハンドラーとミドルウェア
// nil のハンドラーに対応するルートは登録しない
type RouterDeps struct {
	AuthService    application.AuthService
	AuthHandler    *AuthHandler
	RecordsHandler *RecordsHandler
	MapHandler     *MapHandler
	NearbyHandler  *NearbyHandler
	AuditHandler   *AuditHandler

	AuthLimiter    *IPRateLimiter
	OperatorEmails []string
	CORSOrigin     string
	Metrics        gin.HandlerFunc
	MetricsHandler http.Handler
	HealthChecks   map[string]func() error
}

// NewRouter は gin.Engine を組み立てる
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())
	if deps.CORSOrigin != "" {
		r.Use(CORS(deps.CORSOrigin))
	}
	if deps.Metrics != nil {
		r.Use(deps.Metrics)
	}

	r.GET("/health", healthHandler(deps.HealthChecks))
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	requireAuth := RequireAuth(deps.AuthService)
	optionalAuth := OptionalAuth(deps.AuthService)

	if h := deps.AuthHandler; h != nil {
		auth := r.Group("/auth")
		if deps.AuthLimiter != nil {
			auth.Use(deps.AuthLimiter.Middleware())
		}
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
		}
		r.GET("/me", requireAuth, h.Me)
	}

	if h := deps.NearbyHandler; h != nil {
		r.GET("/reviews/nearby", optionalAuth, h.NearbyReviews)
		r.GET("/actions/nearby", optionalAuth, h.NearbyActions)
		r.GET("/cities/:ville/average", h.CityAverage)
	}

	if h := deps.RecordsHandler; h != nil {
		r.GET("/reviews", h.ListReviews)
		r.POST("/reviews", requireAuth, h.CreateReview)
		r.GET("/actions", h.ListActions)
		r.POST("/actions", requireAuth, h.CreateAction)
	}

	if h := deps.MapHandler; h != nil {
		mapGroup := r.Group("/map")
		{
			mapGroup.GET("/zones", h.GetZones)
			mapGroup.POST("/reviews", requireAuth, h.SubmitReview)
			mapGroup.POST("/actions", requireAuth, h.InitiateAction)
		}
	}

	if h := deps.AuditHandler; h != nil {
		r.GET("/admin/anomalies", requireAuth, RequireOperator(deps.OperatorEmails), h.GetAnomalies)
	}

	return r
}

// healthHandler は登録された依存先のヘルスチェックを実行する
func healthHandler(checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		failures := gin.H{}
		for name, check := range checks {
			if err := check(); err != nil {
				failures[name] = err.Error()
			}
		}
		if len(failures) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "service": "ViviCity-App", "details": failures})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ViviCity-App"})
	}
}
