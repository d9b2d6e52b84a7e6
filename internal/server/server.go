// Package server boots the storefront and owns the http.Server lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/mcreations/storefront/database/migrations" // register migrations

	"github.com/mcreations/storefront/app/routes"
	"github.com/mcreations/storefront/config"
	"github.com/mcreations/storefront/pkg/cache"
	"github.com/mcreations/storefront/pkg/database"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/metrics"
	"github.com/mcreations/storefront/pkg/middleware"
	"github.com/mcreations/storefront/pkg/migration"
	"github.com/mcreations/storefront/pkg/reqid"
	"github.com/mcreations/storefront/pkg/router"
	"github.com/mcreations/storefront/pkg/session"
	"github.com/mcreations/storefront/pkg/storage"
)

// Boot loads configuration and connects the backing services. It is shared
// by the serve command and the db commands.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: connect database: %w", err)
	}

	if err := cache.Connect(); err != nil {
		// Redis is optional in development; sessions and caching degrade.
		logger.Warn("redis unavailable", "error", err)
	}

	storage.Connect()
	return nil
}

// NewRouter assembles the middleware stack and the full route table.
func NewRouter() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.Identify)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	routes.RegisterAPI(r)

	// With the local disk, media URLs resolve against this process.
	if config.StorageDefault() == "local" {
		prefix := "/" + strings.Trim(config.MediaURL(), "/")
		r.Mount(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(config.MediaRoot()))))
	}

	return r
}

// Start boots everything, runs pending migrations, and serves HTTP until
// SIGINT/SIGTERM, then drains connections for up to 10 seconds.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return fmt.Errorf("server: migrate: %w", err)
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
