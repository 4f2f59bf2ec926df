package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/models"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

type ProfileHandler struct {
	Engine *engine.Engine
}

func NewProfileHandler(e *engine.Engine) *ProfileHandler {
	return &ProfileHandler{Engine: e}
}

type ProfileCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// POST /profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	profile, err := h.Engine.Register(r.Context(), req.Name, req.Email, req.Photo)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, profile)
}

// GET /profiles/{membershipId}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	membershipID := mux.Vars(r)["membershipId"]

	profile, err := h.Engine.GetProfile(r.Context(), membershipID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(profile)
}

// PUT /profiles/{membershipId}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	membershipID := mux.Vars(r)["membershipId"]

	var req ProfileCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	profile, err := h.Engine.UpdateProfile(r.Context(), membershipID, req.Name, req.Photo)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(profile)
}

type ReferenceAddRequest struct {
	MembershipID string `json:"membershipId"`
	Name         string `json:"name"`
}

// POST /profiles/{membershipId}/references
func (h *ProfileHandler) AddReference(w http.ResponseWriter, r *http.Request) {
	membershipID := mux.Vars(r)["membershipId"]

	var req ReferenceAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ref, err := h.Engine.AddReference(r.Context(), membershipID, req.MembershipID, req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"message":   "Reference added",
		"reference": ref,
	})
}

// DELETE /profiles/{membershipId}/references/{refId}
func (h *ProfileHandler) RemoveReference(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.Engine.RemoveReference(r.Context(), vars["membershipId"], vars["refId"])
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Reference removed"})
}

type DocumentUploadRequest struct {
	DocumentData string `json:"documentData"`
	DocumentType string `json:"documentType"`
}

// POST /profiles/{membershipId}/document
func (h *ProfileHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	membershipID := mux.Vars(r)["membershipId"]

	var req DocumentUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	profile, err := h.Engine.UploadDocument(r.Context(), membershipID, req.DocumentData, req.DocumentType)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(profile)
}

type MemberSummary struct {
	MembershipID string `json:"membershipId"`
	Name         string `json:"name"`
	Verified     bool   `json:"verified"`
}

// GET /profiles/search?q=&limit= — public member search for the references
// picker; only exposes what the picker needs.
func (h *ProfileHandler) SearchMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := parseQueryInt(r, "limit", 20)

	profiles, err := h.Engine.ListProfiles(r.Context(), q, limit, 0)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	results := make([]MemberSummary, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, MemberSummary{
			MembershipID: p.MembershipID,
			Name:         p.Name,
			Verified:     p.PaymentStatus == models.PaymentConfirmed,
		})
	}

	json.NewEncoder(w).Encode(results)
}
