package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/httpx"
	"github.com/tair/crumbly/pkg/middleware"

	_ "github.com/tair/crumbly/docs"
)

const healthTimeout = 2 * time.Second

// Pinger checks the database connection
type Pinger func(ctx context.Context) error

// RouterConfig holds the settings of the outer HTTP surface
type RouterConfig struct {
	ServiceName    string
	PublicDir      string
	AllowedOrigins []string
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Success  bool   `json:"success"`
	Database string `json:"database"`
}

// NewRouter builds the storefront HTTP handler
func NewRouter(h *Handlers, cfg RouterConfig, ping Pinger, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = httpx.Handle(func(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
		return 0, nil, apperror.NotFound("Route not found")
	})
	router.MethodNotAllowedHandler = httpx.Handle(func(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
		return 0, nil, apperror.Validation("Method not allowed").WithCode(http.StatusMethodNotAllowed)
	})
	router.Use(middleware.Tracing(cfg.ServiceName), h.Metrics.Middleware)

	h.Catalog.RegisterRoutes(router)
	h.Favorites.RegisterRoutes(router)
	h.Cart.RegisterRoutes(router)
	h.Users.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheck(ping)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if cfg.PublicDir != "" {
		router.PathPrefix("/images/").Handler(http.FileServer(http.Dir(cfg.PublicDir))).Methods(http.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(middleware.Logging(middleware.Recover(router)))
}

// healthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthCheck(ping Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{Success: false, Database: "unreachable"})
			return
		}
		httpx.RespondJSON(w, http.StatusOK, HealthResponse{Success: true, Database: "up"})
	}
}
