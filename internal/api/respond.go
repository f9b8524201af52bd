package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourusername/keiba-desk/internal/datasource"
	"github.com/yourusername/keiba-desk/internal/models"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var errBadRequest = errors.New("bad request")

var badRequestErrors = []error{
	errBadRequest,
	models.ErrUnknownHorse,
	models.ErrDuplicateHorse,
	models.ErrInvalidMark,
	models.ErrManualScoreOutOfRange,
	models.ErrUnknownBetType,
	models.ErrUnknownSortKey,
	models.ErrNegativeAmount,
	models.ErrInvalidRaceMeta,
	models.ErrUnknownCombination,
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	var sourceErr datasource.DataSourceError

	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyAllocation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &sourceErr), errors.Is(err, datasource.ErrNoEntries):
		return http.StatusBadGateway
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
	}

	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
	})
}

func (s *Server) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return s.validate.Struct(dst)
}

func uuidParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", errBadRequest, key, raw)
	}
	return id, nil
}
