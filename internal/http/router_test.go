package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chargeops/internal/http/middleware"
	"chargeops/internal/service"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func testRouter(t *testing.T, tokenSvc *service.TokenService) http.Handler {
	t.Helper()
	deps := RouterDeps{
		SessionsHandler:  http.HandlerFunc(okHandler),
		EmployeesHandler: http.HandlerFunc(okHandler),
		LoginHandler:     okHandler,
		ReportsHandler:   okHandler,
		HealthHandler:    okHandler,
	}
	return NewRouter(deps, middleware.Auth(tokenSvc))
}

func TestRouterHealthIsPublic(t *testing.T) {
	router := testRouter(t, service.NewTokenService("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestRouterPreflightAnswersNoContent(t *testing.T) {
	router := testRouter(t, service.NewTokenService("secret", time.Hour))

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if origin := resp.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("missing CORS header, got %q", origin)
	}
}

func TestRouterSessionsRequireToken(t *testing.T) {
	router := testRouter(t, service.NewTokenService("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestRouterAcceptsValidToken(t *testing.T) {
	tokenSvc := service.NewTokenService("secret", time.Hour)
	router := testRouter(t, tokenSvc)

	token, err := tokenSvc.GenerateToken("emp-1", "employee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestRouterLoginRejectsGet(t *testing.T) {
	router := testRouter(t, service.NewTokenService("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", resp.Code)
	}
}
