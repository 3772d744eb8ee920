package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/todo-microservices/task-service/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// getOptionalQueryID parses an integer ID query parameter. An absent or
// empty parameter yields nil.
func getOptionalQueryID(r *http.Request, paramName string) (*int64, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return &id, nil
}

// getQueryInt parses an integer query parameter, returning fallback when it
// is absent or empty.
func getQueryInt(r *http.Request, paramName string, fallback int) (int, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidFormat)
	}

	return n, nil
}
