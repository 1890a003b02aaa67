package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"employee-api/internal/domain"
	"employee-api/internal/logger"
)

// BasePath is where the employee routes are mounted.
const BasePath = "/api/v1/employee"

// EmployeeService is the facade the handlers dispatch to.
type EmployeeService interface {
	GetByID(ctx context.Context, id string) (domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	SearchByName(ctx context.Context, query string) ([]domain.Employee, error)
	HighestSalary(ctx context.Context) (int, error)
	TopTenEarners(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error)
	DeleteByID(ctx context.Context, id string) (string, error)
}

type Options struct {
	AllowedOrigins []string
	// RequestTimeout bounds each request's context; 0 disables it.
	RequestTimeout time.Duration
}

// NewRouter wires middleware, the health check and the employee routes.
func NewRouter(svc EmployeeService, log *logger.Logger, opts Options) *chi.Mux {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handlers{svc: svc, log: log.With("component", "api")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/search/{searchString}", h.SearchByName)
		r.Get("/highestSalary", h.HighestSalary)
		r.Get("/topTenHighestEarningEmployeeNames", h.TopTenEarners)
		r.Get("/{id}", h.GetByID)
		r.Delete("/{id}", h.DeleteByID)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: "route not found", Code: "route.not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Code: "route.method_not_allowed"})
	})
	return r
}
