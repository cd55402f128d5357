package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an AppError to its status code. Anything else is a 500
// and its detail stays in the log.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appErr.Message)
	case apperrors.ErrorTypeExternal:
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("Upstream failure")
		respondWithError(w, http.StatusBadGateway, appErr.Message)
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Internal error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
