package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skisteve007/Clean-Check/internal/constants"
	"github.com/Skisteve007/Clean-Check/internal/models"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

// SponsorHandler manages the slot-keyed sponsor logos shown on the public
// site. Reads are public; uploads and removals sit behind the admin boundary.
type SponsorHandler struct {
	Collection  *mongo.Collection
	AuditLogger utils.Logger
}

// GET /sponsors — all populated slots as a slot-number-keyed map, the shape
// the frontend slot components read.
func (h *SponsorHandler) GetSponsors(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.Collection.Find(r.Context(), bson.M{})
	if err != nil {
		utils.JSONError(w, "Failed to fetch sponsor logos", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var logos []models.SponsorLogo
	if err := cursor.All(r.Context(), &logos); err != nil {
		utils.JSONError(w, "Error decoding sponsor logos", http.StatusInternalServerError)
		return
	}

	out := make(map[string]string, len(logos))
	for _, l := range logos {
		out[strconv.Itoa(l.Slot)] = l.Logo
	}
	json.NewEncoder(w).Encode(out)
}

type SponsorUploadRequest struct {
	Logo string `json:"logo"`
}

// POST /admin/sponsors/{slot}
func (h *SponsorHandler) UploadSponsorLogo(w http.ResponseWriter, r *http.Request) {
	slot, ok := parseSlot(w, r)
	if !ok {
		return
	}

	var req SponsorUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Logo == "" {
		utils.JSONError(w, "Logo data is required", http.StatusBadRequest)
		return
	}

	logo := models.SponsorLogo{
		Slot:      slot,
		Logo:      req.Logo,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := h.Collection.ReplaceOne(r.Context(),
		bson.M{"slot": slot},
		logo,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		utils.JSONError(w, "Failed to save sponsor logo: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.SponsorLogoEntity, constants.Update, slot)

	json.NewEncoder(w).Encode(map[string]any{
		"message": "Sponsor logo saved",
		"slot":    slot,
	})
}

// DELETE /admin/sponsors/{slot} — idempotent, clearing an empty slot is fine.
func (h *SponsorHandler) DeleteSponsorLogo(w http.ResponseWriter, r *http.Request) {
	slot, ok := parseSlot(w, r)
	if !ok {
		return
	}

	if _, err := h.Collection.DeleteOne(r.Context(), bson.M{"slot": slot}); err != nil {
		utils.JSONError(w, "Failed to remove sponsor logo: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.SponsorLogoEntity, constants.Delete, slot)

	json.NewEncoder(w).Encode(map[string]any{
		"message": "Sponsor logo removed",
		"slot":    slot,
	})
}

func parseSlot(w http.ResponseWriter, r *http.Request) (int, bool) {
	slot, err := strconv.Atoi(mux.Vars(r)["slot"])
	if err != nil || slot < 1 || slot > models.SponsorSlots {
		utils.JSONError(w, "Invalid sponsor slot", http.StatusBadRequest)
		return 0, false
	}
	return slot, true
}
