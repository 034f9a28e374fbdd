package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"taskboard/models"
	"taskboard/utilities"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type messageResponse struct {
	Message string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utilities.LogError(err, "failed to encode response")
	}
}

func statusFor(err error) int {
	switch models.KindOf(err) {
	case models.ErrUnauthenticated:
		return http.StatusUnauthorized
	case models.ErrForbidden:
		return http.StatusForbidden
	case models.ErrNotFound:
		return http.StatusNotFound
	case models.ErrConflict:
		return http.StatusConflict
	case models.ErrBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status of err's kind. Unexpected errors are
// logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		utilities.Logger.WithField("request_id", RequestIDFrom(r.Context())).
			WithError(err).Errorf("%s %s failed", r.Method, r.URL.Path)
		message = "Internal server error"
	} else {
		utilities.LogDebug("%s %s: %d %s", r.Method, r.URL.Path, status, message)
	}
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// decodeJSON rejects malformed or missing bodies before any service runs.
// Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(v)
	if err == nil {
		// the body must hold exactly one JSON value
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return models.BadRequestf("Invalid request body: unexpected data after JSON value")
		}
		return nil
	}
	if errors.Is(err, io.EOF) {
		return models.BadRequestf("Request body is required")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return models.BadRequestf("%s must be a %s", typeErr.Field, typeErr.Type)
	}
	return models.BadRequestf("Invalid request body: %v", err)
}

// pathID reads a positive integer route variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.BadRequestf("%s must be a positive integer", name)
	}
	return id, nil
}

func optionalQueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, models.BadRequestf("%s must be a positive integer", name)
	}
	return &id, nil
}

func tokenPrefix(token string) string {
	if len(token) > 15 {
		return token[:15] + "..."
	}
	return "***"
}
