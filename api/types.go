package api

import (
	"context"

	"github.com/rpupo63/portfolio-api/models"
	"github.com/rpupo63/portfolio-api/query"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	catalogHandler       catalogHandler
	healthHandler        healthHandler
	projectHandler       projectHandler
	projectDetailHandler projectDetailHandler
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

type projectStore interface {
	FindAll(ctx context.Context, filter query.Filter) ([]models.Project, error)
	FindByID(ctx context.Context, id int64) ([]models.ProjectRow, error)
	Create(ctx context.Context, p models.NewProject) ([]models.ProjectRow, error)
	Update(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error)
}

type projectDetailStore interface {
	Replace(ctx context.Context, projectID, detailID int64, patch models.DetailPatch) error
	FindByKey(ctx context.Context, projectID, detailID int64) (*models.DetailWithImages, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}
