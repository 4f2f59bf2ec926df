package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/models"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

type PaymentHandler struct {
	Engine          *engine.Engine
	ConfirmationCol *mongo.Collection
	EventCol        *mongo.Collection
}

type PaymentConfirmRequest struct {
	MembershipID  string `json:"membershipId"`
	PaymentMethod string `json:"paymentMethod"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transactionId"`
	Notes         string `json:"notes"`
}

// POST /payment/confirm
func (h *PaymentHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	conf, err := h.Engine.SubmitPayment(r.Context(), req.MembershipID, req.PaymentMethod, req.Amount, req.TransactionID, req.Notes)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"message": "Payment confirmation submitted",
		"status":  conf.Status,
	})
}

// GET /admin/payments/pending
func (h *PaymentHandler) GetPendingPayments(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.ConfirmationCol.Find(r.Context(),
		bson.M{"status": models.ConfirmationPending},
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}),
	)
	if err != nil {
		utils.JSONError(w, "Failed to fetch pending payments", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var pending []models.PaymentConfirmation
	if err := cursor.All(r.Context(), &pending); err != nil {
		utils.JSONError(w, "Error decoding pending payments", http.StatusInternalServerError)
		return
	}
	if pending == nil {
		pending = []models.PaymentConfirmation{}
	}

	json.NewEncoder(w).Encode(pending)
}

// POST /admin/payments/approve?membership_id=&member_id=
func (h *PaymentHandler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	membershipID := r.URL.Query().Get("membership_id")
	if membershipID == "" {
		utils.JSONError(w, "membership_id is required", http.StatusBadRequest)
		return
	}
	memberID := r.URL.Query().Get("member_id")

	profile, err := h.Engine.ApprovePayment(r.Context(), membershipID, memberID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"message": "Payment approved. Member ID: " + profile.AssignedMemberID + ".",
	})
}

type PaymentRejectRequest struct {
	MembershipID string `json:"membershipId"`
	Reason       string `json:"reason"`
}

// POST /admin/payments/reject
func (h *PaymentHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.Engine.RejectPayment(r.Context(), req.MembershipID, req.Reason); err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Payment rejected"})
}

type PaymentWebhookRequest struct {
	Provider      string `json:"provider"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// POST /webhook/payment — provider push notifications; always 200 so the
// provider stops retrying, reconciliation state is in the response body.
func (h *PaymentHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var req PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ev := &models.PaymentEvent{
		Provider:      req.Provider,
		PayerEmail:    req.Email,
		PayerName:     req.Name,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        req.Status,
	}

	ev, err := h.Engine.HandlePaymentEvent(r.Context(), ev)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"reconciled": ev.Reconciled,
		"note":       ev.ReconciliationNote,
	})
}

// GET /admin/payments/events — the reconciliation inbox, unreconciled first.
func (h *PaymentHandler) GetPaymentEvents(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.EventCol.Find(r.Context(), bson.M{},
		options.Find().SetSort(bson.D{{Key: "reconciled", Value: 1}, {Key: "receivedAt", Value: -1}}),
	)
	if err != nil {
		utils.JSONError(w, "Failed to fetch payment events", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var events []models.PaymentEvent
	if err := cursor.All(r.Context(), &events); err != nil {
		utils.JSONError(w, "Error decoding payment events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.PaymentEvent{}
	}

	json.NewEncoder(w).Encode(events)
}
