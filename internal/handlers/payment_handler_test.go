package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Skisteve007/Clean-Check/internal/handlers"
)

func TestPaymentHandler_SubmitPayment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing profile", func(mt *mtest.T) {
		handler := &handlers.PaymentHandler{
			Engine:          newTestEngine(mt),
			ConfirmationCol: mt.Coll,
			EventCol:        mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.profiles", mtest.FirstBatch))

		router := mux.NewRouter()
		router.HandleFunc("/payment/confirm", handler.SubmitPayment).Methods("POST")

		reqBytes, _ := json.Marshal(handlers.PaymentConfirmRequest{
			MembershipID:  "missing-id",
			PaymentMethod: "PayPal",
			Amount:        "$39",
		})
		req := httptest.NewRequest(http.MethodPost, "/payment/confirm", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", w.Result().Status)
		}
	})

	mt.Run("invalid payload", func(mt *mtest.T) {
		handler := &handlers.PaymentHandler{
			Engine:          newTestEngine(mt),
			ConfirmationCol: mt.Coll,
			EventCol:        mt.Coll,
		}

		router := mux.NewRouter()
		router.HandleFunc("/payment/confirm", handler.SubmitPayment).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/payment/confirm", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Result().Status)
		}
	})
}

func TestPaymentHandler_ApprovePayment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("membership_id required", func(mt *mtest.T) {
		handler := &handlers.PaymentHandler{
			Engine:          newTestEngine(mt),
			ConfirmationCol: mt.Coll,
			EventCol:        mt.Coll,
		}

		router := mux.NewRouter()
		router.HandleFunc("/admin/payments/approve", handler.ApprovePayment).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/admin/payments/approve", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Result().Status)
		}
	})

	mt.Run("missing profile", func(mt *mtest.T) {
		handler := &handlers.PaymentHandler{
			Engine:          newTestEngine(mt),
			ConfirmationCol: mt.Coll,
			EventCol:        mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.profiles", mtest.FirstBatch))

		router := mux.NewRouter()
		router.HandleFunc("/admin/payments/approve", handler.ApprovePayment).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/admin/payments/approve?membership_id=missing-id", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", w.Result().Status)
		}
	})
}
