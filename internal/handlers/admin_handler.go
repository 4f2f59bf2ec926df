package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skisteve007/Clean-Check/internal/constants"
	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/models"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

type AdminHandler struct {
	Engine         *engine.Engine
	AdminCol       *mongo.Collection
	ProfileCol     *mongo.Collection
	VisitCol       *mongo.Collection
	SharedPassword string
	AuditLogger    utils.Logger
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// POST /admin/login — shared-secret login, kept for the legacy admin panel.
// Mirrors the panel's expectation of a 200 with success=false on bad
// password rather than a 401.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.SharedPassword)) != 1 {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid password"})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Login successful"})
}

type AdminUserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// POST /admin/users/create
func (h *AdminHandler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var req AdminUserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.JSONError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	admin := models.AdminUser{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.AdminCol.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(w, "Username already exists", http.StatusConflict)
			return
		}
		utils.JSONError(w, "Insert failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(ctx, models.AdminUserEntity, constants.Create, admin.Username)

	utils.JSONResponse(w, http.StatusCreated, admin)
}

// GET /admin/users
func (h *AdminHandler) ListAdminUsers(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.AdminCol.Find(r.Context(), bson.M{})
	if err != nil {
		utils.JSONError(w, "Failed to fetch admin users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var admins []models.AdminUser
	if err := cursor.All(r.Context(), &admins); err != nil {
		utils.JSONError(w, "Error decoding admin users", http.StatusInternalServerError)
		return
	}
	if admins == nil {
		admins = []models.AdminUser{}
	}

	json.NewEncoder(w).Encode(admins)
}

// DELETE /admin/users/{username}
func (h *AdminHandler) DeleteAdminUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	res, err := h.AdminCol.DeleteOne(r.Context(), bson.M{"username": username})
	if err != nil {
		utils.JSONError(w, "Delete failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		utils.JSONError(w, "Admin user not found", http.StatusNotFound)
		return
	}

	h.AuditLogger.Log(r.Context(), models.AdminUserEntity, constants.Delete, username)

	json.NewEncoder(w).Encode(map[string]string{"message": "Admin user deleted"})
}

type AdminUserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /admin/users/login — named admin accounts; issues the bearer token
// the admin-auth middleware accepts.
func (h *AdminHandler) AdminUserLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminUserLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	var admin models.AdminUser
	err := h.AdminCol.FindOne(r.Context(), bson.M{"username": req.Username}).Decode(&admin)
	if err != nil {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(admin.Username)
	if err != nil {
		utils.JSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.AdminUserEntity, constants.Login, admin.Username)

	json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"admin": admin,
	})
}

// GET /admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalUsers, _ := h.ProfileCol.CountDocuments(ctx, bson.M{})

	// Count only actual references.
	var refCount int64
	cursor, err := h.ProfileCol.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"references": bson.M{"$exists": true, "$ne": []any{}}}}},
		bson.D{{Key: "$unwind", Value: "$references"}},
		bson.D{{Key: "$count", Value: "total"}},
	})
	if err == nil {
		var results []bson.M
		if cursor.All(ctx, &results) == nil && len(results) > 0 {
			if total, ok := results[0]["total"].(int32); ok {
				refCount = int64(total)
			}
		}
	}

	totalVisits, _ := h.VisitCol.CountDocuments(ctx, bson.M{})

	approved, _ := h.ProfileCol.CountDocuments(ctx, bson.M{
		"paymentStatus": models.PaymentConfirmed,
	})

	json.NewEncoder(w).Encode(map[string]any{
		"totalUsers":       totalUsers,
		"totalReferences":  refCount,
		"totalVisits":      totalVisits,
		"qrCodesGenerated": approved,
	})
}

// GET /admin/profiles?search=&limit=&skip=
func (h *AdminHandler) GetAllProfiles(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit := parseQueryInt(r, "limit", 100)
	skip := parseQueryInt(r, "skip", 0)

	profiles, err := h.Engine.ListProfiles(r.Context(), search, limit, skip)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	json.NewEncoder(w).Encode(profiles)
}

// DELETE /admin/profiles/{membershipId}
func (h *AdminHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	membershipID := mux.Vars(r)["membershipId"]

	if err := h.Engine.DeleteProfile(r.Context(), membershipID); err != nil {
		writeEngineError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Profile deleted successfully"})
}
