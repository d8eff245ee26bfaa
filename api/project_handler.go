package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/query"
	"github.com/rpupo63/portfolio-api/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxBodySize = 1 << 20

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo projectStore
}

func newProjectHandler(projectRepo projectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects lists projects, optionally filtered by show_only and
// show_only_attribute and sorted by sort_by and order_by.
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		filter := query.Filter{
			ShowOnly:          params.Get("show_only"),
			ShowOnlyAttribute: params.Get("show_only_attribute"),
			SortBy:            params.Get("sort_by"),
			OrderBy:           params.Get("order_by"),
		}

		projects, err := h.projectRepo.FindAll(r.Context(), filter)
		if err != nil {
			if errs.IsSQLInjectionError(err) {
				h.logger.Warn().
					Str("requestID", ctxGetRequestID(r.Context())).
					Str("query", r.URL.RawQuery).
					Msg("rejected listing query")
			}
			h.responder.WriteError(w, wrapDatabaseError("fetch", "projects", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

// getProject returns one row per (detail, image) pair of the project.
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := validation.ParseIdentifier(chi.URLParam(r, "projectID"), "Error, projectID must be an integer number")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rows, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, rows)
	}
}

// createProject inserts a project with its details and images.
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readRecord(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := validation.ProjectCreate(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rows, err := h.projectRepo.Create(r.Context(), input)
		if err != nil {
			if errs.IsUniqueConstraintViolationError(err) || errs.IsForeignKeyConstraintError(err) {
				h.logger.Warn().
					Str("requestID", ctxGetRequestID(r.Context())).
					Str("title", input.Title).
					Err(err).
					Msg("project rejected by a table constraint")
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().
			Str("requestID", ctxGetRequestID(r.Context())).
			Str("title", input.Title).
			Int("details", len(input.Details)).
			Int("images", len(input.Images)).
			Msg("project created")
		h.responder.WriteJSON(w, http.StatusCreated, rows)
	}
}

// updateProject patches the scalar fields of a project.
// @Router /api/projects/{projectID} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := validation.ProjectKey(chi.URLParam(r, "projectID")); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body, err := readRecord(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, patch, err := validation.ProjectPatch(chi.URLParam(r, "projectID"), body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Update(r.Context(), projectID, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

func readRecord(w http.ResponseWriter, r *http.Request) (validation.Record, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errs.NewMalformedPayloadError("request body", err)
	}
	return validation.DecodeRecord(body)
}
