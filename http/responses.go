package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/logger"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		logger.FromContext(r.Context(), log).WithError(err).Error("Error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context(), log).WithError(err).Warn("Error writing response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, status int, message string, details map[string]string) {
	writeJSON(w, r, log, status, ErrorResponse{Error: message, Details: details})
}

// writeServiceError maps domain validation failures to 400 and anything
// else to 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, log, http.StatusBadRequest, "invalid input", map[string]string{ve.Field: ve.Message})
		return
	}
	logger.FromContext(r.Context(), log).WithError(err).Error("Request failed")
	writeError(w, r, log, http.StatusInternalServerError, "internal server error", nil)
}

// decodeJSON checks the content type, then decodes and validates a
// request body. On failure the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, dst any) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, r, log, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromContext(r.Context(), log).WithError(err).Debug("Error decoding request body")
		writeError(w, r, log, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	if err := getValidator().Struct(dst); err != nil {
		writeError(w, r, log, http.StatusBadRequest, "invalid input", formatValidationError(err))
		return false
	}
	return true
}
