package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/catalog"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/order"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/payment"
)

// Machine-readable error kinds carried in failure responses.
const (
	KindValidation = "VALIDATION"
	KindNotFound   = "NOT_FOUND"
	KindBadRequest = "BAD_REQUEST"
	KindInternal   = "INTERNAL"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondWithError(w http.ResponseWriter, code int, kind, message string) {
	respondWithJSON(w, code, errorResponse{Error: kind, Message: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"INTERNAL","message":"failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("handler: failed to write JSON response")
	}
}

// mapError classifies a service error into an HTTP status and error kind.
// Payment rejections map to BAD_REQUEST: the caller's request was fine in
// shape but the charge was declined.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrUserIDRequired),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, payment.ErrPaymentFailed):
		return http.StatusBadRequest, KindBadRequest
	default:
		return http.StatusInternalServerError, KindInternal
	}
}
