package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/prospekta/lead-tracker/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeUseCaseError maps the domain error taxonomy onto HTTP statuses.
// Storage errors are logged and surfaced as an opaque 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch usecase.ErrorCode(err) {
	case usecase.CodeValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case usecase.CodeUnauthorized:
		writeError(w, http.StatusUnauthorized, err.Error())
	case usecase.CodeForbidden:
		writeError(w, http.StatusForbidden, err.Error())
	case usecase.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case usecase.CodeConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
