package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
)

// RouterConfig holds what NewRouter needs to build the route table.
type RouterConfig struct {
	Tasks   *TaskHandler
	Metrics *middleware.Metrics
	Logger  *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
//
//	GET    /api/tasks        list tasks, optionally paginated
//	POST   /api/tasks        create a task
//	GET    /api/tasks/{id}   get a task
//	PUT    /api/tasks/{id}   update a task
//	DELETE /api/tasks/{id}   delete a task
//	GET    /health           liveness probe
//	GET    /metrics          Prometheus metrics (when Metrics is set)
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task handler cannot be nil for router")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", cfg.Tasks.ListTasks)
		r.Post("/", cfg.Tasks.CreateTask)
		r.Get("/{id:[0-9]+}", cfg.Tasks.GetTask)
		r.Put("/{id:[0-9]+}", cfg.Tasks.UpdateTask)
		r.Delete("/{id:[0-9]+}", cfg.Tasks.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("Failed to write health check response", slog.String("error", err.Error()))
		}
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return r
}
