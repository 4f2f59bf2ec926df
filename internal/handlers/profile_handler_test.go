package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/handlers"
	"github.com/Skisteve007/Clean-Check/internal/models"
	"github.com/Skisteve007/Clean-Check/internal/store"
)

func newTestEngine(mt *mtest.T) *engine.Engine {
	st := store.NewMongoStore(mt.Coll, mt.Coll, mt.Coll)
	return engine.New(st, nil, nil, engine.Config{VerifiedReferencesOnly: true})
}

func TestProfileHandler_CreateProfile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful creation", func(mt *mtest.T) {
		handler := handlers.NewProfileHandler(newTestEngine(mt))

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		router := mux.NewRouter()
		router.HandleFunc("/profiles", handler.CreateProfile).Methods("POST")

		reqBody := handlers.ProfileCreateRequest{Name: "Jane Doe", Email: "jane@example.com"}
		reqBytes, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusCreated {
			t.Errorf("expected status Created, got %v", res.Status)
		}

		var created models.Profile
		if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if created.MembershipID == "" {
			t.Error("expected a generated membershipId")
		}
		if created.UserStatus != models.StatusPendingPayment {
			t.Errorf("expected userStatus 1, got %d", created.UserStatus)
		}
	})

	mt.Run("empty name rejected", func(mt *mtest.T) {
		handler := handlers.NewProfileHandler(newTestEngine(mt))

		router := mux.NewRouter()
		router.HandleFunc("/profiles", handler.CreateProfile).Methods("POST")

		reqBytes, _ := json.Marshal(handlers.ProfileCreateRequest{Name: "   "})
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Result().Status)
		}
	})
}

func TestProfileHandler_GetProfile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("profile not found", func(mt *mtest.T) {
		handler := handlers.NewProfileHandler(newTestEngine(mt))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.profiles", mtest.FirstBatch))

		router := mux.NewRouter()
		router.HandleFunc("/profiles/{membershipId}", handler.GetProfile).Methods("GET")

		req := httptest.NewRequest(http.MethodGet, "/profiles/missing-id", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", w.Result().Status)
		}
	})

	mt.Run("profile found", func(mt *mtest.T) {
		handler := handlers.NewProfileHandler(newTestEngine(mt))

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.profiles", mtest.FirstBatch, bson.D{
			{Key: "membershipId", Value: "abc-123"},
			{Key: "name", Value: "Jane Doe"},
			{Key: "userStatus", Value: 3},
			{Key: "paymentStatus", Value: "confirmed"},
			{Key: "assignedMemberId", Value: "424242"},
		}))

		router := mux.NewRouter()
		router.HandleFunc("/profiles/{membershipId}", handler.GetProfile).Methods("GET")

		req := httptest.NewRequest(http.MethodGet, "/profiles/abc-123", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status OK, got %v", res.Status)
		}

		var body map[string]any
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["qrCodeEnabled"] != true {
			t.Error("expected derived qrCodeEnabled=true for confirmed payment")
		}
	})
}

func TestProfileHandler_UploadDocument(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("forbidden before payment confirmed", func(mt *mtest.T) {
		handler := handlers.NewProfileHandler(newTestEngine(mt))

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.profiles", mtest.FirstBatch, bson.D{
			{Key: "membershipId", Value: "abc-123"},
			{Key: "name", Value: "Jane Doe"},
			{Key: "userStatus", Value: 1},
			{Key: "paymentStatus", Value: "pending"},
		}))

		router := mux.NewRouter()
		router.HandleFunc("/profiles/{membershipId}/document", handler.UploadDocument).Methods("POST")

		reqBytes, _ := json.Marshal(handlers.DocumentUploadRequest{
			DocumentData: "base64blob",
			DocumentType: "application/pdf",
		})
		req := httptest.NewRequest(http.MethodPost, "/profiles/abc-123/document", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusForbidden {
			t.Errorf("expected status Forbidden, got %v", w.Result().Status)
		}
	})
}
