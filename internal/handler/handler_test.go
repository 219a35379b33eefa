package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ViviCity-App/internal/application"
	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/usecase"
)

const validToken = "valid-token"

type fakeAuthService struct {
	registered []string
}

func (s *fakeAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, application.ErrMissingFields
	}
	for _, e := range s.registered {
		if e == req.Email {
			return nil, repository.ErrEmailExists
		}
	}
	s.registered = append(s.registered, req.Email)
	return &model.User{ID: "user-1", Email: req.Email}, nil
}

func (s *fakeAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Password != "right" {
		return nil, application.ErrInvalidCredentials
	}
	return &model.LoginResponse{Token: validToken}, nil
}

func (s *fakeAuthService) ParseToken(token string) (*model.TokenClaims, error) {
	if token != validToken {
		return nil, application.ErrInvalidToken
	}
	return &model.TokenClaims{UserID: "user-1", Email: "me@example.com"}, nil
}

func (s *fakeAuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	return &model.User{ID: userID, Email: "me@example.com"}, nil
}

type fakeZoneMapUseCase struct {
	err       error
	lastZoom  int
	criterion model.Criterion
}

func (u *fakeZoneMapUseCase) GetZones(ctx context.Context, criterion model.Criterion, zoom int) (*model.ZonesResponse, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.lastZoom = zoom
	u.criterion = criterion
	return &model.ZonesResponse{Criterion: string(criterion), Zoom: zoom, Zones: []model.ZoneSummary{{Average: 3, Count: 2}}}, nil
}

type fakeSubmissionUseCase struct {
	lastOwner string
}

func (u *fakeSubmissionUseCase) SubmitReview(ctx context.Context, ownerID string, req *model.CreateReviewRequest) (*model.CreateReviewResponse, error) {
	u.lastOwner = ownerID
	if req.Note == nil {
		return nil, fmt.Errorf("%w: note は必須です", usecase.ErrInvalidInput)
	}
	return &model.CreateReviewResponse{Status: "success", ReviewID: "r1"}, nil
}

func (u *fakeSubmissionUseCase) InitiateAction(ctx context.Context, ownerID string, req *model.CreateActionRequest) (*model.CreateActionResponse, error) {
	u.lastOwner = ownerID
	return &model.CreateActionResponse{Status: "success", ActionID: "a1"}, nil
}

type fakeNearbyUseCase struct {
	lastQuery usecase.NearbyQuery
}

func (u *fakeNearbyUseCase) NearbyReviews(ctx context.Context, q usecase.NearbyQuery) (*model.NearbyReviewsResponse, error) {
	u.lastQuery = q
	return &model.NearbyReviewsResponse{Reviews: []model.Review{}, Strategy: "cheap_bounding_box", RadiusKm: 5}, nil
}

func (u *fakeNearbyUseCase) NearbyActions(ctx context.Context, q usecase.NearbyQuery) (*model.NearbyActionsResponse, error) {
	u.lastQuery = q
	return &model.NearbyActionsResponse{Actions: []model.Action{}, RadiusKm: 10, Theme: q.Theme}, nil
}

func (u *fakeNearbyUseCase) CityAverage(ctx context.Context, ville string) (*model.CityAverageResponse, error) {
	avg := 3.5
	return &model.CityAverageResponse{Ville: ville, Average: &avg, Count: 2}, nil
}

type fixture struct {
	router     *gin.Engine
	zones      *fakeZoneMapUseCase
	submission *fakeSubmissionUseCase
	nearby     *fakeNearbyUseCase
}

func newFixture(limiter *IPRateLimiter) *fixture {
	gin.SetMode(gin.TestMode)
	auth := &fakeAuthService{}
	f := &fixture{
		zones:      &fakeZoneMapUseCase{},
		submission: &fakeSubmissionUseCase{},
		nearby:     &fakeNearbyUseCase{},
	}
	f.router = NewRouter(RouterDeps{
		AuthService:   auth,
		AuthHandler:   NewAuthHandler(auth),
		MapHandler:    NewMapHandler(f.zones, f.submission),
		NearbyHandler: NewNearbyHandler(f.nearby),
		AuthLimiter:   limiter,
	})
	return f
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	f := newFixture(nil)
	w := f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthReportsFailingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{
		AuthService: &fakeAuthService{},
		HealthChecks: map[string]func() error{
			"postgres": func() error { return errors.New("connection refused") },
			"supabase": func() error { return nil },
		},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "unhealthy", body["status"])
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "connection refused", details["postgres"])
	assert.NotContains(t, details, "supabase")
}

func TestAuthRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodPost, "/auth/register", `{"email":"me@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/auth/register", `{"email":"me@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/auth/register", `{"email":"me@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(http.MethodPost, "/auth/login", `{"email":"me@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/auth/login", `{"email":"me@example.com","password":"right"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, validToken, decode(t, w)["token"])

	w = f.do(http.MethodGet, "/me", "", validToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", decode(t, w)["id"])
}

func TestRequireAuth(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "no token", decode(t, w)["error"])

	w = f.do(http.MethodGet, "/me", "", "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "bad token", decode(t, w)["error"])
}

func TestAuthRateLimit(t *testing.T) {
	f := newFixture(NewIPRateLimiter(0.001, 1))

	w := f.do(http.MethodPost, "/auth/login", `{"email":"me@example.com","password":"right"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/auth/login", `{"email":"me@example.com","password":"right"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestGetZones(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/map/zones?criterion=note&zoom=9", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, f.zones.lastZoom)
	assert.Equal(t, model.CriterionNote, f.zones.criterion)

	w = f.do(http.MethodGet, "/map/zones?longitude_delta=0.02197265625", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 14, f.zones.lastZoom)

	t.Run("不正なパラメータ", func(t *testing.T) {
		for _, path := range []string{
			"/map/zones?criterion=bruit&zoom=9",
			"/map/zones?criterion=note",
			"/map/zones?zoom=abc",
			"/map/zones?longitude_delta=wide",
		} {
			w := f.do(http.MethodGet, path, "", "")
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})

	t.Run("取得失敗は502", func(t *testing.T) {
		f.zones.err = fmt.Errorf("%w: timeout", usecase.ErrFetchFailed)
		defer func() { f.zones.err = nil }()
		w := f.do(http.MethodGet, "/map/zones?zoom=9", "", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, decode(t, w), "details")
	})
}

func TestMapSubmissions(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodPost, "/map/reviews", `{"note":4}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/map/reviews", `{"note":4}`, validToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "me@example.com", f.submission.lastOwner)

	w = f.do(http.MethodPost, "/map/reviews", `{}`, validToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/map/reviews", `{not json`, validToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/map/actions", `{"titre":"Nettoyage","date":"2026-06-01T09:00:00Z"}`, validToken)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNearbyRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/reviews/nearby?lat=48.85&lng=2.35", "", validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "me@example.com", f.nearby.lastQuery.OwnerID)
	assert.Equal(t, model.LatLng{Lat: 48.85, Lng: 2.35}, f.nearby.lastQuery.Center)

	t.Run("不正なトークンは匿名として扱う", func(t *testing.T) {
		w := f.do(http.MethodGet, "/reviews/nearby?lat=48.85&lng=2.35&radius_km=2", "", "forged")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, f.nearby.lastQuery.OwnerID)
		assert.Equal(t, 2.0, f.nearby.lastQuery.RadiusKm)
	})

	w = f.do(http.MethodGet, "/actions/nearby?lat=48.85&lng=2.35&theme=proprete", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "proprete", f.nearby.lastQuery.Theme)

	for _, path := range []string{
		"/reviews/nearby?lng=2.35",
		"/reviews/nearby?lat=95&lng=2.35",
		"/actions/nearby?lat=48.85&lng=2.35&radius_km=-1",
	} {
		w := f.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w = f.do(http.MethodGet, "/cities/Paris/average", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.5, decode(t, w)["average"])
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		want int
	}{
		{&ValidationError{Field: "zoom", Message: "必須です"}, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", usecase.ErrInvalidInput), http.StatusBadRequest},
		{application.ErrMissingFields, http.StatusBadRequest},
		{application.ErrInvalidCredentials, http.StatusUnauthorized},
		{repository.ErrEmailExists, http.StatusConflict},
		{repository.ErrNotFound, http.StatusNotFound},
		{usecase.ErrFetchFailed, http.StatusBadGateway},
		{application.ErrUsersStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, "failed", tt.err)
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

type fakeAuditUseCase struct {
	runs int
}

func (u *fakeAuditUseCase) Run(ctx context.Context) (*model.AuditResponse, error) {
	u.runs++
	return &model.AuditResponse{Scanned: 1, Reports: []model.AnomalyReport{}}, nil
}

func TestAdminAnomaliesRequiresOperator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newRouter := func(operators []string) (*gin.Engine, *fakeAuditUseCase) {
		audit := &fakeAuditUseCase{}
		return NewRouter(RouterDeps{
			AuthService:    &fakeAuthService{},
			AuditHandler:   NewAuditHandler(audit),
			OperatorEmails: operators,
		}), audit
	}
	get := func(r *gin.Engine, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/anomalies", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("トークンなしは401", func(t *testing.T) {
		r, audit := newRouter([]string{"me@example.com"})
		assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
		assert.Zero(t, audit.runs)
	})

	t.Run("許可リストにない利用者は403", func(t *testing.T) {
		r, audit := newRouter([]string{"ops@example.com"})
		w := get(r, validToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "forbidden", decode(t, w)["error"])
		assert.Zero(t, audit.runs)
	})

	t.Run("許可リストが空なら全員403", func(t *testing.T) {
		r, audit := newRouter(nil)
		assert.Equal(t, http.StatusForbidden, get(r, validToken).Code)
		assert.Zero(t, audit.runs)
	})

	t.Run("運用者は監査を実行できる", func(t *testing.T) {
		r, audit := newRouter([]string{" Me@Example.com "})
		w := get(r, validToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, audit.runs)
	})
}

func TestIPRateLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.limiterFor("10.0.0.1")
	l.limiterFor("10.0.0.2")
	assert.Equal(t, 2, l.Size())

	now = now.Add(limiterIdleTTL / 2)
	l.limiterFor("10.0.0.2")

	now = now.Add(limiterIdleTTL/2 + time.Second)
	l.limiterFor("10.0.0.3")
	assert.Equal(t, 2, l.Size())

	l.mu.Lock()
	_, stale := l.limiters["10.0.0.1"]
	_, active := l.limiters["10.0.0.2"]
	l.mu.Unlock()
	assert.False(t, stale)
	assert.True(t, active)
}
