package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"orientation-service/internal/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// RespondWithError writes an error response in JSON format
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithServiceError maps an apperr kind to its status code. Anything
// unclassified is logged and answered with a generic 500.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		logger.InfoContext(r.Context(), "resource not found", "path", r.URL.Path, "error", err)
		RespondWithError(w, http.StatusNotFound, apperr.Message(err, "Not found"))
	case errors.Is(err, apperr.ErrConflict):
		logger.InfoContext(r.Context(), "conflict", "path", r.URL.Path, "error", err)
		RespondWithError(w, http.StatusConflict, apperr.Message(err, "Conflict"))
	case errors.Is(err, apperr.ErrValidation):
		logger.InfoContext(r.Context(), "invalid input", "path", r.URL.Path, "error", err)
		RespondWithError(w, http.StatusBadRequest, apperr.Message(err, "Invalid request"))
	case errors.Is(err, apperr.ErrAuth):
		logger.WarnContext(r.Context(), "unauthorized", "path", r.URL.Path)
		w.Header().Set("WWW-Authenticate", "Bearer")
		RespondWithError(w, http.StatusUnauthorized, apperr.Message(err, "Could not validate credentials"))
	default:
		logger.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// DecodeAndValidate decodes a JSON body into v and runs validator tags on it.
// Both failures are reported as validation errors.
func DecodeAndValidate(r *http.Request, validate *validator.Validate, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}

// IntParam parses a positive integer chi URL parameter.
func IntParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return id, nil
}

// IntQuery parses a required integer query parameter.
func IntQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.Validation("Missing query parameter " + name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("Invalid query parameter " + name)
	}
	return v, nil
}

// FloatQuery parses a required float query parameter.
func FloatQuery(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.Validation("Missing query parameter " + name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid query parameter " + name)
	}
	return v, nil
}
