package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/api"
	"github.com/jwaldner/options-screener/internal/models"
)

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

// setErrorResponse writes {"error": message}, the same shape the backend uses
func setErrorResponse(statusCode int, message string, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(models.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("setErrorResponse: encode: %w", err)
	}

	return nil
}

// setBackendError relays a backend failure: its status when it answered, 502 when it did not
func setBackendError(err error, w http.ResponseWriter) {
	status := http.StatusBadGateway
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}

	if writeErr := setErrorResponse(status, api.UserMessage(err), w); writeErr != nil {
		log.Errorf("❌ Failed to write error response: %v", writeErr)
	}
}
