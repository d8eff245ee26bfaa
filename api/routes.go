package api

import (
	"github.com/go-chi/chi/v5"
)

func setupAPIRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/", handlers.catalogHandler.getEndpoints())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Patch("/projects/{projectID}", handlers.projectHandler.updateProject())

		r.Patch("/projectDetail/{projectID}/{projectDetailID}", handlers.projectDetailHandler.updateProjectDetail())
	})
}

func setupOperationalRoutes(r chi.Router, handlers *routeHandlers, m *metrics) {
	r.Get("/healthz", handlers.healthHandler.healthz())
	r.Method("GET", "/metrics", m.handler())
}
