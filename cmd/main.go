package main

import (
	"context"
	"log"
	"time"

	"ViviCity-App/internal/application"
	"ViviCity-App/internal/config"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/domain/service"
	"ViviCity-App/internal/handler"
	"ViviCity-App/internal/infrastructure/database"
	"ViviCity-App/internal/infrastructure/firestore"
	"ViviCity-App/internal/infrastructure/metrics"
	"ViviCity-App/internal/infrastructure/mqtt"
	repoimpl "ViviCity-App/internal/repository"
	"ViviCity-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 設定の読み込み失敗: %v", err)
	}
	ctx := context.Background()
	m := metrics.NewMetrics()

	deps := handler.RouterDeps{
		AuthLimiter:    handler.NewIPRateLimiter(cfg.Tunables.AuthRatePerSecond, cfg.Tunables.AuthBurst),
		OperatorEmails: cfg.OperatorEmails,
		CORSOrigin:     cfg.CORSOrigin,
		Metrics:        m.GinMiddleware(),
		MetricsHandler: m.Handler(),
		HealthChecks:   map[string]func() error{},
	}

	// 利用者（PostgreSQL）。未設定ならトークン検証のみ行う
	var usersRepo repository.UsersRepository
	if cfg.DatabaseURL != "" {
		pgClient, err := database.NewPostgreSQLClientWithRetry(cfg.DatabaseURL, 5, 2*time.Second)
		if err != nil {
			log.Fatalf("❌ PostgreSQLクライアント初期化失敗: %v", err)
		}
		defer pgClient.Close()
		usersRepo = repoimpl.NewPostgresUsersRepository(pgClient)
		deps.HealthChecks["postgres"] = pgClient.HealthCheck
	} else {
		log.Println("⚠️ DATABASE_URL が未設定のため /auth, /me を無効化")
	}
	authService := application.NewAuthService(usersRepo, cfg.JWTSecret, cfg.Tunables.TokenTTL)
	deps.AuthService = authService
	if usersRepo != nil {
		deps.AuthHandler = handler.NewAuthHandler(authService)
	}
	if len(cfg.OperatorEmails) == 0 {
		log.Println("⚠️ OPERATOR_EMAILS が未設定のため /admin/anomalies は全員拒否")
	}

	// RESTの reviews / actions（Supabase）
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		supabaseClient, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Fatalf("❌ Supabaseクライアント初期化失敗: %v", err)
		}
		if err := supabaseClient.HealthCheck(); err != nil {
			log.Printf("⚠️ Supabaseヘルスチェック失敗: %v", err)
		}
		deps.HealthChecks["supabase"] = supabaseClient.HealthCheck
		recordsService := application.NewRecordsService(
			repoimpl.NewSupabaseReviewRecordsRepository(supabaseClient),
			repoimpl.NewSupabaseActionRecordsRepository(supabaseClient),
		)
		deps.RecordsHandler = handler.NewRecordsHandler(recordsService)
	} else {
		log.Println("⚠️ SUPABASE_URL / SUPABASE_ANON_KEY が未設定のため /reviews, /actions を無効化")
	}

	// 地図・近傍・監査（Firestore）
	if cfg.FirestoreProjectID != "" {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.GoogleCredentials)
		if err != nil {
			log.Fatalf("❌ Firestoreクライアント初期化失敗: %v", err)
		}
		defer firestoreClient.Close()

		store := firestore.NewDocumentStore(firestoreClient.GetClient())
		reviewsRepo := repoimpl.NewDocumentReviewsRepository(store)
		actionsRepo := repoimpl.NewDocumentActionsRepository(store)

		aggregation := service.NewZoneAggregationService(service.ParseOutOfRangePolicy(cfg.Tunables.OutOfRangePolicy))
		dataset := usecase.NewReviewDatasetCache(reviewsRepo, cfg.Tunables.DatasetTTL, m)

		var publisher repository.AnomalyPublisher = repoimpl.NewLogAnomalyPublisher()
		if p := mqtt.NewAnomalyPublisher(mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
		}); p != nil {
			publisher = p
		}

		deps.MapHandler = handler.NewMapHandler(
			usecase.NewZoneMapUseCase(dataset, aggregation, m),
			usecase.NewSubmissionUseCase(reviewsRepo, actionsRepo, dataset),
		)
		deps.NearbyHandler = handler.NewNearbyHandler(usecase.NewNearbyUseCase(
			dataset, actionsRepo,
			service.NewProximityFilterService(), aggregation, m,
			cfg.Tunables.ReviewRadiusKm, cfg.Tunables.ActionRadiusKm,
		))
		deps.AuditHandler = handler.NewAuditHandler(usecase.NewAuditUseCase(
			reviewsRepo, service.NewAnomalyAuditService(cfg.Tunables.AuditRanges), publisher, m,
		))
	} else {
		log.Println("⚠️ FIRESTORE_PROJECT_ID が未設定のため地図関連APIを無効化")
	}

	r := handler.NewRouter(deps)
	log.Printf("🚀 ViviCity-App server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ サーバー起動失敗: %v", err)
	}
}
