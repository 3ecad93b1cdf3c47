/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client IP behind proxies
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. requestLogger: zerolog structured request log + Prometheus counter
  5. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/dashboard, /api/lines/*   Snapshot views
  /api/reports/*                 Shift report CRUD
  /api/plans/*                   Plan CRUD
  /api/configs/*                 Standard-time configs
  /api/costs/*                   Cost-center ledger
  /api/labor, /api/employees     Labor parameters, supervisor accounts
  /api/settings                  Settings document
  /api/scenarios/*               Demo scenarios
  /metrics                       Prometheus exposition

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.
  Deploy behind the plant network boundary.

SEE ALSO:
  - handlers.go: Handler implementations
  - metrics.go: Instruments fed by requestLogger
  - cmd/floorsight: Server startup
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Instruments))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)

		r.Get("/dashboard", h.GetDashboard)
		r.Get("/lines/{lineID}", h.GetLineDetail)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.ListReports)
			r.Post("/", h.CreateReport)
			r.Get("/{id}", h.GetReport)
			r.Put("/{id}", h.UpdateReport)
			r.Delete("/{id}", h.DeleteReport)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/", h.CreatePlan)
			r.Get("/{id}", h.GetPlan)
			r.Put("/{id}", h.UpdatePlan)
			r.Delete("/{id}", h.DeletePlan)
		})

		r.Route("/configs", func(r chi.Router) {
			r.Get("/", h.ListConfigs)
			r.Post("/", h.SaveConfig)
			r.Delete("/{lineID}/{productID}", h.DeleteConfig)
		})

		r.Route("/costs", func(r chi.Router) {
			r.Route("/centers", func(r chi.Router) {
				r.Get("/", h.ListCostCenters)
				r.Post("/", h.SaveCostCenter)
				r.Delete("/{id}", h.DeleteCostCenter)
			})
			r.Route("/values", func(r chi.Router) {
				r.Get("/", h.ListCostValues)
				r.Post("/", h.SaveCostValue)
			})
			r.Route("/allocations", func(r chi.Router) {
				r.Get("/", h.ListCostAllocations)
				r.Post("/", h.SaveCostAllocation)
			})
		})

		r.Route("/labor", func(r chi.Router) {
			r.Get("/", h.GetLabor)
			r.Put("/", h.SaveLabor)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	// Prometheus exposition
	if h.Instruments != nil {
		r.Method(http.MethodGet, "/metrics", h.Instruments.HTTPHandler())
	}

	return r
}

// requestLogger emits one structured log line per request and feeds the
// request counter with the matched chi route pattern.
func requestLogger(instruments *Instruments) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if instruments != nil {
				instruments.Requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			}

			log.Info().
				Str("component", "api").
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
