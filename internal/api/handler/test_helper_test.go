package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/adapter/logging"
	"github.com/martijn/resultsapi/internal/api/dto"
	"github.com/martijn/resultsapi/internal/api/middleware"
	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
	"github.com/martijn/resultsapi/internal/core/service"
	"github.com/martijn/resultsapi/internal/infrastructure/sqlstore"
)

const testPassword = "password123"

// testEnv holds all test dependencies
type testEnv struct {
	db          *sqlstore.DB
	router      *gin.Engine
	authService *service.AuthService
	resultRepo  repository.ResultRepository

	alice *domain.User // ROLE_USER
	bob   *domain.User // ROLE_USER
	admin *domain.User // ROLE_ADMIN

	aliceToken string
	bobToken   string
	adminToken string
}

// setupTestEnv creates a test environment with in-memory SQLite database,
// three users and a token for each.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Use in-memory SQLite database
	db, err := sqlstore.New(sqlstore.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Create repositories
	userRepo := sqlstore.NewUserRepository(db)
	resultRepo := sqlstore.NewResultRepository(db)
	authCodeRepo := sqlstore.NewAuthCodeRepository(db)

	// Create services
	logger := logging.NewNopLogger()
	authService := service.NewAuthService(userRepo, authCodeRepo, "test-secret", "HS256", logger)
	resultService := service.NewResultService(resultRepo, userRepo, logger)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(nil))

	RegisterAuthRoutes(router, NewAuthHandler(authService))
	RegisterResultRoutes(router, NewResultHandler(resultService), middleware.AuthMiddleware(authService))

	env := &testEnv{
		db:          db,
		router:      router,
		authService: authService,
		resultRepo:  resultRepo,
	}

	hash, err := authService.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	for _, u := range []struct {
		email string
		admin bool
		user  **domain.User
		token *string
	}{
		{"alice@example.com", false, &env.alice, &env.aliceToken},
		{"bob@example.com", false, &env.bob, &env.bobToken},
		{"admin@example.com", true, &env.admin, &env.adminToken},
	} {
		user := domain.NewUser(u.email, hash, u.admin)
		if err := userRepo.Create(ctx, user); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		token, err := authService.AuthenticatePassword(ctx, u.email, testPassword)
		if err != nil {
			t.Fatalf("failed to issue token for %s: %v", u.email, err)
		}
		*u.user = user
		*u.token = token
	}

	return env
}

// seedResult stores a result owned by owner.
func (env *testEnv) seedResult(t *testing.T, owner *domain.User, value int64, at string) *domain.Result {
	t.Helper()

	ts, err := domain.ParseTime(at)
	if err != nil {
		t.Fatalf("bad seed time %q: %v", at, err)
	}

	result := domain.NewResult(value, owner, ts)
	if err := env.resultRepo.Insert(context.Background(), result); err != nil {
		t.Fatalf("failed to seed result: %v", err)
	}
	return result
}

// request describes one call against the router.
type request struct {
	method  string
	path    string
	token   string
	body    string
	headers map[string]string
}

// do performs the request and returns the response
func (env *testEnv) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// parseResultEnvelope parses the response body into ResultEnvelope
func parseResultEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.ResultEnvelope {
	t.Helper()

	var resp dto.ResultEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseResultListResponse parses the response body into ResultListResponse
func parseResultListResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ResultListResponse {
	t.Helper()

	var resp dto.ResultListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// etagOf returns the ETag header without quotes.
func etagOf(w *httptest.ResponseRecorder) string {
	return strings.Trim(w.Header().Get("ETag"), `"`)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := domain.ParseTime(s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return ts
}
