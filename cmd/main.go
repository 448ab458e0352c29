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

	"pharmacy/internal/apiclient"
	"pharmacy/internal/cart"
	"pharmacy/internal/checkout"
	"pharmacy/internal/config"
	"pharmacy/internal/logging"
	"pharmacy/internal/session"
	"pharmacy/internal/web"
)

func main() {
	app := newApp()
	// .env must be in the environment before cli resolves EnvVars.
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("pharmacy console stopped")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "pharmacy",
		Usage:  "web console for the pharmacy REST API",
		Flags:  config.ConsoleFlags(),
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := config.ConsoleFrom(c)
	if err != nil {
		return err
	}
	logger, err := logging.NewStdout(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	carts, err := cart.NewStore(cfg.CartSize)
	if err != nil {
		return err
	}
	api := apiclient.New(cfg.APIURL,
		apiclient.WithLogger(logger.With().Str("component", "apiclient").Logger()),
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout + 5*time.Second}),
	)
	srv, err := web.New(web.Deps{
		API:      api,
		Sessions: session.NewManager(cfg.SessionTTL, cfg.SecureCookies),
		Carts:    carts,
		Checkout: checkout.New(logger.With().Str("component", "checkout").Logger()),
		Timeout:  cfg.RequestTimeout,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Str("api", cfg.APIURL).Msg("console listening")
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
	logger.Info().Msg("console stopped")
	return nil
}
