package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/middleware"
	"astrodesk/pkg/model"
	"astrodesk/pkg/token"
)

type mockAuthService struct {
	loginFunc       func(ctx context.Context, username, password string) (*model.LoginResponse, error)
	ensureAdminFunc func(ctx context.Context, username, password string) (bool, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return &model.LoginResponse{Token: "t", Username: username}, nil
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if m.ensureAdminFunc != nil {
		return m.ensureAdminFunc(ctx, username, password)
	}
	return true, nil
}

func testConfig(initAdmin bool) *config.Config {
	return &config.Config{
		Log:              logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
		InitAdminEnabled: initAdmin,
		AdminUsername:    "admin",
		AdminPassword:    "admin123",
	}
}

func newTestRouter(svc *mockAuthService, cfg *config.Config) *httprouter.Router {
	router := httprouter.New()
	NewAuthHandler(svc, func(next httprouter.Handle) httprouter.Handle { return next }, cfg).RegisterRoutes(router)
	return router
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(_ context.Context, username, password string) (*model.LoginResponse, error) {
			if username != "admin" || password != "secret123" {
				t.Errorf("unexpected credentials: %q / %q", username, password)
			}
			return &model.LoginResponse{Token: "signed-token", Username: username}, nil
		},
	}
	router := newTestRouter(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":"secret123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got model.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.Token != "signed-token" || got.Username != "admin" {
		t.Errorf("unexpected response: %+v", got)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(_ context.Context, _, _ string) (*model.LoginResponse, error) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		},
	}
	router := newTestRouter(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMe_RoundTrip(t *testing.T) {
	cfg := testConfig(false)
	tokens := token.NewService("test-secret", time.Hour)
	svc := &mockAuthService{
		loginFunc: func(_ context.Context, username, _ string) (*model.LoginResponse, error) {
			signed, err := tokens.Issue(username)
			if err != nil {
				t.Fatalf("failed to issue token: %v", err)
			}
			return &model.LoginResponse{Token: signed, Username: username}, nil
		},
	}

	router := httprouter.New()
	NewAuthHandler(svc, middleware.RequireAuth(tokens, cfg.Log), cfg).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":"secret123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	var login model.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /api/auth/me, got %d", rec.Code)
	}
	var me map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("invalid me response: %v", err)
	}
	if me["username"] != "admin" {
		t.Errorf("expected username admin, got %q", me["username"])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestInitAdmin_DisabledByDefault(t *testing.T) {
	called := false
	svc := &mockAuthService{
		ensureAdminFunc: func(_ context.Context, _, _ string) (bool, error) {
			called = true
			return true, nil
		},
	}
	router := newTestRouter(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/init-admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when disabled, got %d", rec.Code)
	}
	if called {
		t.Error("service must not be called when init-admin is disabled")
	}
}

func TestInitAdmin_Enabled(t *testing.T) {
	svc := &mockAuthService{
		ensureAdminFunc: func(_ context.Context, username, password string) (bool, error) {
			if username != "admin" || password != "admin123" {
				t.Errorf("expected configured credentials, got %q / %q", username, password)
			}
			return true, nil
		},
	}
	router := newTestRouter(svc, testConfig(true))

	req := httptest.NewRequest(http.MethodPost, "/api/init-admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "created") {
		t.Errorf("expected created message, got %s", rec.Body.String())
	}
}

func TestInitAdmin_StoreFailure(t *testing.T) {
	svc := &mockAuthService{
		ensureAdminFunc: func(_ context.Context, _, _ string) (bool, error) {
			return false, apperrors.Unavailable("Admin store")
		},
	}
	router := newTestRouter(svc, testConfig(true))

	req := httptest.NewRequest(http.MethodPost, "/api/init-admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
