package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Skisteve007/Clean-Check/internal/models"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

type VisitHandler struct {
	Collection *mongo.Collection
}

// POST /track-visit
func (h *VisitHandler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var visit models.SiteVisit
	if err := json.NewDecoder(r.Body).Decode(&visit); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if visit.Page == "" {
		visit.Page = "/"
	}
	visit.Timestamp = time.Now().UTC()

	if _, err := h.Collection.InsertOne(r.Context(), visit); err != nil {
		utils.JSONError(w, "Failed to track visit", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "tracked"})
}
