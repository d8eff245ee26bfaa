package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-api/api"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	setupLogging(cfg)
	log.Info().Msg("Initializing app...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.ResolveSecrets(ctx, &cfg); err != nil {
		log.Fatal().Err(err).Msg("Error resolving secrets")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(db)
	defer func() {
		if err := currentDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.ResetDatabase {
		seed, err := database.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Error loading seed file")
		}
		if err := currentDB.Reset(ctx, seed); err != nil {
			log.Fatal().Err(err).Msg("Error resetting database")
		}
	}

	// If generating models, run generation and exit
	if cfg.GenerateModels {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, "./generated"); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		if _, err := models.GenerateColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	server := api.NewServer(currentDB, cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Closing server")
		return server.ShutdownGracefully(cfg.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
