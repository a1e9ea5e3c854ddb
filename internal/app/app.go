// Package app wires configuration, storage and HTTP together. The database
// handle is opened once here and closed by Close.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stitchbook-dev/stitchbook/db"
	"github.com/stitchbook-dev/stitchbook/internal/auth"
	"github.com/stitchbook-dev/stitchbook/internal/config"
	"github.com/stitchbook-dev/stitchbook/internal/csvio"
	"github.com/stitchbook-dev/stitchbook/internal/documents"
	"github.com/stitchbook-dev/stitchbook/internal/handlers"
	"github.com/stitchbook-dev/stitchbook/internal/logging"
	"github.com/stitchbook-dev/stitchbook/internal/middleware"
	"github.com/stitchbook-dev/stitchbook/internal/router"
	"github.com/stitchbook-dev/stitchbook/internal/store"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *gorm.DB
	Store  *store.Store
}

// Open connects to the database only. It is enough for the administrative
// commands, which never mint tokens or touch documents.
func Open(cfg *config.Config, log zerolog.Logger) (*App, error) {
	gormDB, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbLog := logging.Component(log, "db")
	dbLog.Info().
		Str("driver", cfg.Database.Driver).
		Msg("connected to database")

	return &App{
		Config: cfg,
		Log:    log,
		DB:     gormDB,
		Store:  store.New(gormDB),
	}, nil
}

func (a *App) Migrate() error {
	if err := db.MigrateDatabase(a.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return db.Close(a.DB)
}

// Router builds the HTTP engine with every collaborator injected.
func (a *App) Router() (*gin.Engine, error) {
	signer, err := auth.NewSigner(a.Config.JWTSecret, a.Config.TokenTTL)
	if err != nil {
		return nil, err
	}

	storage, err := documents.NewFileStorage(a.Config.UploadDir)
	if err != nil {
		return nil, err
	}

	h := handlers.New(handlers.Dependencies{
		Store:    a.Store,
		Signer:   signer,
		Attacher: documents.NewAttacher(a.Store, storage),
		Parser:   csvio.LineParser{},
		Exporter: csvio.NewExporter(csvio.BoolFormat{
			True:  a.Config.Export.OwnedTrue,
			False: a.Config.Export.OwnedFalse,
		}),
		Log:            logging.Component(a.Log, "http"),
		MaxUploadBytes: a.Config.MaxUploadBytes,
	})

	return router.NewRouter(router.Options{
		Handler:        h,
		Signer:         signer,
		Users:          a.Store,
		Log:            logging.Component(a.Log, "http"),
		AllowedOrigins: a.Config.AllowedOrigins,
		TrustedProxies: a.Config.TrustedProxies,
		AuthLimiter:    middleware.NewRateLimiter(a.Config.AuthRateLimit.PerMinute, a.Config.AuthRateLimit.Burst),
		MaxUploadBytes: a.Config.MaxUploadBytes,
	})
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) Serve(ctx context.Context) error {
	engine, err := a.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.Log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
