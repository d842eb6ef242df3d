package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"swapskillz/internal/adapter/api"
	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
	"swapskillz/internal/adapter/repository"
	"swapskillz/internal/domain/entity"
	domainrepo "swapskillz/internal/domain/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/internal/infrastructure/auth"
	"swapskillz/internal/infrastructure/metrics"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/config"
	"swapskillz/pkg/response"
)

type testServer struct {
	e     *echo.Echo
	users domainrepo.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	userRepo := repository.NewMemoryUserRepository()
	swapRepo := repository.NewMemorySwapRepository()
	reviewRepo := repository.NewMemoryReviewRepository()
	skillRepo := repository.NewMemorySkillRepository()
	messageRepo := repository.NewMemoryMessageRepository()

	registry := metrics.NewRegistry()
	tokens := auth.NewJWTService(config.JWTConfig{Secret: "router-test", Expiry: time.Hour, Issuer: "swapskillz-test"})

	authUseCase := usecase.NewAuthUseCase(userRepo, tokens, auth.NewBcryptHasher(bcrypt.MinCost), auth.NewInMemoryTokenBlacklist())
	ratings := usecase.NewRatingAggregator(reviewRepo, userRepo, registry)
	handler.Setup(
		authUseCase,
		usecase.NewUserUseCase(userRepo, nil),
		usecase.NewSkillUseCase(skillRepo),
		usecase.NewSwapUseCase(swapRepo, userRepo, service.NewSwapLifecycle(service.NewAccessGuard()), registry, nil),
		usecase.NewReviewUseCase(reviewRepo, swapRepo, ratings),
		usecase.NewMessageUseCase(messageRepo, userRepo, swapRepo, nil),
	)
	handler.SetupHealthHandler(nil)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Use(middleware.Metrics(registry))

	SetupHealthRouter(e, registry.Handler())
	Setup(e, middleware.NewAuthMiddleware(authUseCase), middleware.NewAdminMiddleware())

	return &testServer{e: e, users: userRepo}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

type session struct {
	Token string
	ID    string
}

func (s *testServer) register(t *testing.T, name string) session {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": name,
		"last_name":  "Tester",
		"email":      name + "@example.com",
		"password":   "Secret123",
	})
	require.Equal(t, http.StatusCreated, code)

	var data struct {
		Token string      `json:"token"`
		User  entity.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return session{Token: data.Token, ID: data.User.ID}
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	ada := s.register(t, "ada")

	code, env := s.do(t, http.MethodGet, "/api/auth/me", ada.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var me map[string]interface{}
	decodeData(t, env, &me)
	assert.Equal(t, "ada@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")

	code, env = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ada@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, _ = s.do(t, http.MethodPost, "/api/auth/logout", ada.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/api/auth/me", ada.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "not-an-email",
		"password":   "Secret123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	s.register(t, "ada")
	code, env = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "Ada",
		"last_name":  "Again",
		"email":      "ada@example.com",
		"password":   "Secret123",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestMissingToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/swaps", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, _ = s.do(t, http.MethodGet, "/api/swaps", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func createSwap(t *testing.T, s *testServer, requester session, providerID string) string {
	t.Helper()
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	code, env := s.do(t, http.MethodPost, "/api/swaps", requester.Token, map[string]interface{}{
		"provider_id":         providerID,
		"skill_offered":       map[string]string{"name": "Go", "category": "Technology"},
		"skill_requested":     map[string]string{"name": "Guitar", "category": "Music"},
		"title":               "Go for guitar",
		"description":         "Weekly sessions",
		"proposed_start_date": start,
		"proposed_end_date":   start.AddDate(0, 0, 7),
		"meeting_type":        "Online",
		"estimated_hours":     map[string]float64{"requester_time": 4, "provider_time": 4},
	})
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)

	var swap struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		DurationDays int    `json:"duration_days"`
	}
	decodeData(t, env, &swap)
	assert.Equal(t, "pending", swap.Status)
	assert.Equal(t, 7, swap.DurationDays)
	return swap.ID
}

func TestSwapLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	carol := s.register(t, "carol")

	id := createSwap(t, s, alice, bob.ID)

	code, env := s.do(t, http.MethodGet, "/api/swaps/"+id, carol.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, env = s.do(t, http.MethodPatch, "/api/swaps/"+id+"/status", bob.Token, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
	assert.Equal(t, "Cannot transition from pending to completed", env.Error.Message)

	code, _ = s.do(t, http.MethodPatch, "/api/swaps/"+id+"/status", bob.Token, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/swaps/"+id+"/confirm", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(t, http.MethodPost, "/api/swaps/"+id+"/confirm", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var swap struct {
		Status string `json:"status"`
	}
	decodeData(t, env, &swap)
	assert.Equal(t, "completed", swap.Status)

	code, env = s.do(t, http.MethodGet, "/api/swaps/"+id+"/history", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var history []entity.SwapLog
	decodeData(t, env, &history)
	require.Len(t, history, 2)
	assert.Equal(t, entity.SwapStatusCompleted, history[1].ToStatus)

	code, _ = s.do(t, http.MethodPost, "/api/swaps/"+id+"/reviews", alice.Token, map[string]interface{}{
		"rating":  5,
		"comment": "Great",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(t, http.MethodGet, "/api/users/"+bob.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	var profile entity.User
	decodeData(t, env, &profile)
	assert.Equal(t, entity.Rating{Average: 5, Count: 1}, profile.Rating)

	code, env = s.do(t, http.MethodGet, "/api/users/"+bob.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page response.PaginatedResponse
	decodeData(t, env, &page)
	assert.EqualValues(t, 1, page.Total)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	ada := s.register(t, "ada")
	bob := s.register(t, "bob")

	code, env := s.do(t, http.MethodPatch, "/api/admin/users/"+bob.ID+"/active", ada.Token, map[string]bool{"is_active": false})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	user, err := s.users.GetByID(context.Background(), ada.ID)
	require.NoError(t, err)
	user.Role = entity.RoleAdmin
	require.NoError(t, s.users.Update(context.Background(), user))

	code, _ = s.do(t, http.MethodPatch, "/api/admin/users/"+bob.ID+"/active", ada.Token, map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/auth/me", bob.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodPatch, "/api/admin/users/"+bob.ID+"/active", ada.Token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSkillsBrowseExcludesCaller(t *testing.T) {
	s := newTestServer(t)
	ada := s.register(t, "ada")
	bob := s.register(t, "bob")

	for _, sess := range []session{ada, bob} {
		code, _ := s.do(t, http.MethodPost, "/api/skills", sess.Token, map[string]string{"title": "Cooking", "category": "Cooking"})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := s.do(t, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page response.PaginatedResponse
	decodeData(t, env, &page)
	assert.EqualValues(t, 2, page.Total)

	code, env = s.do(t, http.MethodGet, "/api/skills?exclude_mine=true", ada.Token, nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, env, &page)
	assert.EqualValues(t, 1, page.Total)
}

func TestAvatarUploadWithoutStorage(t *testing.T) {
	s := newTestServer(t)
	ada := s.register(t, "ada")

	var body bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/api/users/me/avatar", &body)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ada.Token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swapskillz_http_request_duration_seconds")
}
