package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/api"
	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/imaging"
	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web"
	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/config"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"api_url", cfg.APIURL,
		"db_path", cfg.DBPath,
		"http_timeout", cfg.HTTPTimeout,
		"persistent_session", cfg.HasSecretKey(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Credential store: encrypted SQLite when a secret is configured,
	// otherwise process memory.
	var store driven.CredentialStore
	if cfg.HasSecretKey() {
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		slog.Info("database opened", "path", cfg.DBPath)

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			return err
		}
		slog.Info("migrations complete", "schema_version", version)

		key, err := sqliteadapter.DeriveKey(cfg.SecretKey)
		if err != nil {
			return err
		}
		store = sqliteadapter.NewCredentialRepo(db, key, slog.Default())
	} else {
		slog.Warn("STOREFRONT_SECRET_KEY not set, admin session will not survive a restart")
		store = memory.NewCredentialStore()
	}

	// 4. Request pipeline to the backend API.
	client, err := api.NewClient(cfg.APIURL, cfg.HTTPTimeout, slog.Default())
	if err != nil {
		return err
	}

	// 5. Application services. The session restores in the background so
	// the server answers immediately; admin routes show a loading page
	// until it is ready.
	sessionSvc := application.NewSessionService(store, client, client, slog.Default())
	go sessionSvc.Initialize(ctx)

	catalogSvc := application.NewCatalogService(client, client, slog.Default())
	adminSvc := application.NewAdminService(client, client, imaging.NewCompressor(), slog.Default())

	// 6. Register JSON API and GUI routes on one mux.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(sessionSvc, catalogSvc, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(sessionSvc, catalogSvc, adminSvc, cfg.AssetBaseURL, cfg.OrderPhone, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("storefront started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 8. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
