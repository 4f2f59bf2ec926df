package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/Skisteve007/Clean-Check/internal/handlers"
)

func TestAdminHandler_Login(t *testing.T) {
	handler := &handlers.AdminHandler{SharedPassword: "admin123"}

	router := mux.NewRouter()
	router.HandleFunc("/admin/login", handler.Login).Methods("POST")

	tests := []struct {
		name        string
		password    string
		wantSuccess bool
	}{
		{"correct password", "admin123", true},
		{"wrong password", "letmein", false},
		{"empty password", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBytes, _ := json.Marshal(handlers.AdminLoginRequest{Password: tt.password})
			req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(reqBytes))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				t.Fatalf("expected status OK, got %v", res.Status)
			}

			var body map[string]any
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["success"] != tt.wantSuccess {
				t.Errorf("expected success=%v, got %v", tt.wantSuccess, body["success"])
			}
		})
	}
}
