package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/goccy/go-json"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type catalogHandler struct {
	responder Responder
	logger    zerolog.Logger
	path      string
}

func newCatalogHandler(path string) catalogHandler {
	logger := log.With().Str("handlerName", "catalogHandler").Logger()

	return catalogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		path:      path,
	}
}

// getEndpoints serves the endpoint catalog file. It is read on every request
// so edits show up without a restart.
// @Router /api [get]
func (h catalogHandler) getEndpoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(h.path)
		if errors.Is(err, fs.ErrNotExist) {
			h.responder.WriteError(w, errs.NewNotFoundError("Endpoint JSON file not found"))
			return
		}
		if err != nil {
			h.logger.Error().Err(err).Str("path", h.path).Msg("failed to read endpoint catalog")
			h.responder.WriteError(w, errs.NewInternalError("Internal Server Error"))
			return
		}
		if !json.Valid(data) {
			h.logger.Error().Str("path", h.path).Msg("endpoint catalog is not valid JSON")
			h.responder.WriteError(w, errs.NewInternalError("Internal Server Error"))
			return
		}

		h.responder.WriteRawJSON(w, http.StatusOK, data)
	}
}
