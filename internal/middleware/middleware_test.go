package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skisteve007/Clean-Check/internal/middleware"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

func adminEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(middleware.AdminPrincipal(r.Context())))
	})
}

func TestAdminAuthSharedPassword(t *testing.T) {
	auth := &middleware.AdminAuth{SharedPassword: "admin123"}
	handler := auth.Middleware(adminEcho())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats?password=admin123", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "admin" {
		t.Errorf("expected principal admin, got %q", w.Body.String())
	}
}

func TestAdminAuthWrongPassword(t *testing.T) {
	auth := &middleware.AdminAuth{SharedPassword: "admin123"}
	handler := auth.Middleware(adminEcho())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats?password=wrong", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminAuthBearerToken(t *testing.T) {
	utils.InitJwtSecret("test-secret")
	token, err := utils.GenerateJWT("steve")
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	auth := &middleware.AdminAuth{SharedPassword: "admin123"}
	handler := auth.Middleware(adminEcho())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "steve" {
		t.Errorf("expected principal steve, got %q", w.Body.String())
	}
}

func TestAdminAuthMissingCredentials(t *testing.T) {
	auth := &middleware.AdminAuth{SharedPassword: "admin123"}
	handler := auth.Middleware(adminEcho())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminAuthInvalidBearer(t *testing.T) {
	utils.InitJwtSecret("test-secret")
	auth := &middleware.AdminAuth{SharedPassword: "admin123"}
	handler := auth.Middleware(adminEcho())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
