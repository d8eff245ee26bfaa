package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectDetailHandler struct {
	responder         Responder
	logger            zerolog.Logger
	projectDetailRepo projectDetailStore
}

func newProjectDetailHandler(projectDetailRepo projectDetailStore) projectDetailHandler {
	logger := log.With().Str("handlerName", "projectDetailHandler").Logger()

	return projectDetailHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		projectDetailRepo: projectDetailRepo,
	}
}

// updateProjectDetail replaces a detail's description and, if Images is sent,
// its whole image set. Responds with the detail as stored afterwards.
// @Router /api/projectDetail/{projectID}/{projectDetailID} [patch]
func (h projectDetailHandler) updateProjectDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := validation.DetailKey(chi.URLParam(r, "projectID"), chi.URLParam(r, "projectDetailID")); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body, err := readRecord(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, detailID, patch, err := validation.DetailPatch(
			chi.URLParam(r, "projectID"),
			chi.URLParam(r, "projectDetailID"),
			body,
		)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectDetailRepo.Replace(r.Context(), projectID, detailID, patch); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project detail", err))
			return
		}

		detail, err := h.projectDetailRepo.FindByKey(r.Context(), projectID, detailID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "project detail", err))
			return
		}

		if patch.ReplaceImages {
			h.logger.Info().
				Str("requestID", ctxGetRequestID(r.Context())).
				Int64("projectID", projectID).
				Int64("detailID", detailID).
				Int("images", len(patch.Images)).
				Msg("detail images replaced")
		}
		h.responder.WriteJSON(w, http.StatusOK, detail)
	}
}
