package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	querybus "relgraph-backend/application/queries/bus"
	"relgraph-backend/infrastructure/config"
	"relgraph-backend/interfaces/http/rest/handlers"
	"relgraph-backend/interfaces/http/rest/middleware"
	"relgraph-backend/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	queryBus *querybus.QueryBus
	cfg      *config.Config
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(queryBus *querybus.QueryBus, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{
		queryBus: queryBus,
		cfg:      cfg,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/graph", func(r chi.Router) {
			graphHandler := handlers.NewGraphHandler(rt.queryBus, rt.logger)
			r.Post("/assemble", graphHandler.AssembleGraph)
			r.Post("/layout", graphHandler.ComputeLayout)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
