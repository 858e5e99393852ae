package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/codeai-site/internal/api"
	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/repository"
	"github.com/codeai-site/internal/service"
	"github.com/codeai-site/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting codeai-site server...")
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("Failed to read .env file")
	}

	// Initialize repositories over the content directory
	if _, err := os.Stat(cfg.Content.Dir); err != nil {
		log.Warn().Err(err).Str("dir", cfg.Content.Dir).Msg("Content directory is not readable")
	}
	repos := repository.New(os.DirFS(cfg.Content.Dir), &cfg.Content, log)

	// Seed discussion for new views
	seed, err := service.LoadSeed(&cfg.Comments)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seed comments")
	}

	// Initialize services
	services := service.NewServices(repos, cfg, seed, log)

	// Start idle view janitor
	go services.Views.StartJanitor(context.Background())
	log.Info().Msg("View janitor started")

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("content_dir", cfg.Content.Dir).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop view janitor
	services.Views.StopJanitor()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
