package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, engine.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	utils.JSONError(w, err.Error(), statusFromError(err))
}

func parseQueryInt(r *http.Request, key string, fallback int64) int64 {
	val := r.URL.Query().Get(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
