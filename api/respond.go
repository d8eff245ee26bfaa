package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON marshals data and writes it with the given status.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		r.writeInternal(w)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		r.WriteError(w, errs.NewApiErr(http.StatusRequestEntityTooLarge, "Response too large"))
		return
	}

	r.WriteRawJSON(w, status, jsonData)
}

// WriteRawJSON writes bytes that are already JSON.
func (r Responder) WriteRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError writes err as an ErrorResponse. Errors that are not *errs.ApiErr
// and 500s are logged and reported as a bare 500. Other 5xx keep their message
// but never their details.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeInternal(w)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("error", apiErr.GetFullError()).
			Str("details", apiErr.Details).
			Msg("request failed")
		if apiErr.StatusCode == http.StatusInternalServerError {
			r.writeInternal(w)
			return
		}
		r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{Error: apiErr.Message(), Status: "error"})
		return
	}

	r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

func (r Responder) writeInternal(w http.ResponseWriter) {
	body, _ := json.Marshal(ErrorResponse{Error: "Internal Server Error", Status: "error"})
	r.WriteRawJSON(w, http.StatusInternalServerError, body)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
