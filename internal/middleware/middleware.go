package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Skisteve007/Clean-Check/internal/utils"
)

type contextKey string

// ContextAdmin carries the resolved admin principal: "admin" for the shared
// secret, otherwise the admin user's username.
const ContextAdmin contextKey = "admin"

func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// AdminAuth accepts either of the two admin credentials and resolves both to
// a principal before anything downstream runs: the shared admin password
// (query param or X-Admin-Password header, compared in constant time) or a
// bearer token issued at admin user login. Handlers and the engine never see
// which mechanism was used.
type AdminAuth struct {
	SharedPassword string
}

func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		password := r.URL.Query().Get("password")
		if password == "" {
			password = r.Header.Get("X-Admin-Password")
		}
		if password != "" {
			if subtle.ConstantTimeCompare([]byte(password), []byte(a.SharedPassword)) == 1 {
				ctx := context.WithValue(r.Context(), ContextAdmin, "admin")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			utils.JSONError(w, "Invalid admin password", http.StatusUnauthorized)
			return
		}

		auth := r.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			claims, err := utils.ParseJWT(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				utils.JSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ContextAdmin, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
	})
}

// AdminPrincipal returns the resolved admin identity, or "" outside the
// admin-auth boundary.
func AdminPrincipal(ctx context.Context) string {
	if v, ok := ctx.Value(ContextAdmin).(string); ok {
		return v
	}
	return ""
}
