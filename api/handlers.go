package api

import (
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, cfg config.Config) *routeHandlers {
	return &routeHandlers{
		catalogHandler:       newCatalogHandler(cfg.EndpointsFile),
		healthHandler:        newHealthHandler(db),
		projectHandler:       newProjectHandler(db.ProjectRepo()),
		projectDetailHandler: newProjectDetailHandler(db.ProjectDetailRepo()),
	}
}
