package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	tasks   service.TaskService
	metrics *middleware.Metrics
	router  http.Handler
}

// newApplication wires the store, service and HTTP layers around an open
// database pool. The application owns db from here on.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}

	taskStore := postgres.NewPostgresTaskStore(db, logger)

	tasks, err := service.NewTaskService(taskStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	metrics := middleware.NewMetrics()

	router := api.NewRouter(api.RouterConfig{
		Tasks:   api.NewTaskHandler(tasks, logger),
		Metrics: metrics,
		Logger:  logger,
	})

	return &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		tasks:   tasks,
		metrics: metrics,
		router:  router,
	}, nil
}

func (app *application) newServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}
}

// listenAndServe binds the configured port and serves until ctx is done.
func (app *application) listenAndServe(ctx context.Context) error {
	server := app.newServer()

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}

	return app.serve(ctx, server, ln)
}

// serve runs server on ln. When ctx is cancelled the server gets
// shutdownTimeout to finish in-flight requests.
func (app *application) serve(ctx context.Context, server *http.Server, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			app.logger.Error("server error", slog.String("error", err.Error()))
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server stopped gracefully")
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("database connection closed")
}
