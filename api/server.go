package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, cfg config.Config) Server {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	startupTime := time.Now()

	server := &http.Server{
		Addr:         address,
		Handler:      newRouter(db, cfg, withRequestLogger(requestLogger(cfg.LogFormat))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}
}

type router struct {
	requestLogger zerolog.Logger
}

func withRequestLogger(logger zerolog.Logger) func(*router) {
	return func(r *router) {
		r.requestLogger = logger
	}
}

// requestLogger writes colored console lines for LOG_FORMAT=console and JSON otherwise.
func requestLogger(format string) zerolog.Logger {
	if format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return log.With().Str("component", "http").Logger()
}

func newRouter(db database.Database, cfg config.Config, opts ...func(*router)) *chi.Mux {
	router := router{requestLogger: log.Logger}
	for _, opt := range opts {
		opt(&router)
	}

	m := newMetrics()
	handlers := initializeHandlers(db, cfg)
	notFound := NewResponder(log.Logger)

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Origins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	chiRouter.Use(chimiddleware.CleanPath)
	chiRouter.Use(m.middleware)
	chiRouter.Use(HTTPLoggingMiddleware(router.requestLogger))

	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, errs.NewNotFoundError("Route not found"))
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	setupAPIRoutes(chiRouter, handlers)
	setupOperationalRoutes(chiRouter, handlers, m)

	return chiRouter
}

// Start blocks serving HTTP. A server closed by ShutdownGracefully returns nil.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down the server")
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
