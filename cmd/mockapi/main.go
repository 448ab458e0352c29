// Command mockapi serves the pharmacy REST API from memory, for development
// and demos of the console.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"pharmacy/internal/config"
	httpapi "pharmacy/internal/http"
	"pharmacy/internal/logging"
	"pharmacy/internal/service"

	_ "pharmacy/docs"
)

// @title Pharmacy API
// @version 1.0
// @description In-memory pharmacy backend: accounts, drugs, staff and sales.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := newApp()
	// .env must be in the environment before cli resolves EnvVars.
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("mockapi stopped")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "mockapi",
		Usage:  "in-memory pharmacy REST API",
		Flags:  config.MockAPIFlags(),
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg := config.MockAPIFrom(c)
	logger, err := logging.NewStdout(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	svc := service.NewInMemory()
	if cfg.Seed {
		if err := svc.Seed(context.Background()); err != nil {
			return err
		}
		logger.Info().
			Str("admin", service.SeedAdminUsername).
			Str("customer", service.SeedCustomerUsername).
			Msg("seeded demo data")
	}

	srv := httpapi.NewServer(svc, logger, httpapi.WithOrigins(cfg.AllowedOrigins...))
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("REST API listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
		return err
	}
	return nil
}
