package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        pinger
}

func newHealthHandler(db pinger) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

func (h healthHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "database unavailable"))
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
