// Package server initializes and runs the identity service. It wires the
// database, migrations, signing key, business service, and HTTP API, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"crypto/ecdsa"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/filmstack/idm/internal/logging"
	"github.com/filmstack/idm/internal/server/config"
	"github.com/filmstack/idm/internal/server/httpapi"
	"github.com/filmstack/idm/internal/server/repositories/repomanager"
	"github.com/filmstack/idm/internal/server/services"
	"github.com/filmstack/idm/internal/server/token"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	httpSrv *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	key, err := loadSigningKey(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	issuer, err := token.NewIssuer(key, cfg.AccessTokenExpire)
	if err != nil {
		return nil, fmt.Errorf("issuer init error: %w", err)
	}

	svc := services.NewIdentityService(db, m, issuer, cfg)
	handler := httpapi.NewHandler(svc, logger)
	httpSrv := httpapi.NewServer(cfg.EndpointAddrHTTP, handler, logger)

	return &App{config: cfg, logger: logger, db: db, httpSrv: httpSrv}, nil
}

// loadSigningKey reads the configured PEM file, or generates an ephemeral
// keypair when no file is configured. An ephemeral key invalidates all
// outstanding access tokens on restart, so production deployments should
// configure a persistent one.
func loadSigningKey(ctx context.Context, cfg *config.Config, logger logging.Logger) (*ecdsa.PrivateKey, error) {
	if cfg.SigningKeyFile != "" {
		key, err := token.LoadPrivateKey(cfg.SigningKeyFile)
		if err != nil {
			return nil, fmt.Errorf("signing key error: %w", err)
		}
		return key, nil
	}

	logger.Warn(ctx, "no signing key configured, generating an ephemeral one")
	key, err := token.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("signing key error: %w", err)
	}
	return key, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)

	if err := app.httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.httpSrv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	wg.Wait()
	app.logger.Info(shutdownCtx, "app stopped")
}
