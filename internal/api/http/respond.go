package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rentalmarket-backend/internal/lifecycle"
	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/service"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingActor):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, service.ErrItemReferenced),
		errors.Is(err, service.ErrItemUnavailable):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, pricing.ErrInvalidRange),
		errors.Is(err, pricing.ErrOptionNotOffered),
		errors.Is(err, pricing.ErrMissingRateTable),
		errors.Is(err, service.ErrAdditionalDriver),
		errors.Is(err, service.ErrPayLaterNotAllowed),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrInvalidRecompute):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}
