package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront-api/auth"
	"github.com/jrsteele09/go-storefront-api/internal/config"
	"github.com/jrsteele09/go-storefront-api/internal/metrics"
	"github.com/jrsteele09/go-storefront-api/products"
	"github.com/jrsteele09/go-storefront-api/token"
)

// Dependencies are the services the HTTP layer delegates to
type Dependencies struct {
	Accounts *auth.AccountService
	Products *products.Service
	Tokens   *token.Manager
	Metrics  metrics.Recorder    // Optional, defaults to metrics.Nop
	Gatherer prometheus.Gatherer // Optional, /metrics is not mounted without it
}

type route struct {
	method  string
	pattern string
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	router   chi.Router
	routes   []route
	config   config.Config
	accounts *auth.AccountService
	products *products.Service
	tokens   *token.Manager
	metrics  metrics.Recorder
	gatherer prometheus.Gatherer
	limiter  *RateLimiter
}

func New(cfg config.Config, deps Dependencies) (*Server, error) {
	if deps.Accounts == nil || deps.Products == nil || deps.Tokens == nil {
		return nil, errors.New("[Server New] accounts, products and tokens are required")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		router:   chi.NewRouter(),
		config:   cfg,
		accounts: deps.Accounts,
		products: deps.Products,
		tokens:   deps.Tokens,
		metrics:  deps.Metrics,
		gatherer: deps.Gatherer,
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	if cfg.GetEnableRateLimiting() {
		s.limiter = NewRateLimiter(cfg.GetRateLimitPerMinute(), s.metrics)
	}

	s.router.Use(s.RequestIDMiddleware, s.RecoverMiddleware, s.LoggingMiddleware, s.CorsMiddleware)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, "route not found", nil)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background work owned by the server
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// RegisterRoute mounts handler behind mw, applied in the order given
func (s *Server) RegisterRoute(method, pattern string, handler http.HandlerFunc, mw ...Middleware) {
	s.routes = append(s.routes, route{method: method, pattern: pattern})
	s.router.Method(method, pattern, ChainMiddleware(handler, mw...))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, rt := range s.routes {
		logRoute(rt.method, rt.pattern)
	}
}

// ANSI colours for the DEV route listing
const (
	resetColour   = "\033[0m"
	defaultColour = "\033[90m"
)

var methodColours = map[string]string{
	http.MethodGet:    "\033[32m",
	http.MethodPost:   "\033[34m",
	http.MethodPut:    "\033[36m",
	http.MethodDelete: "\033[33m",
	http.MethodPatch:  "\033[35m",
}

func logRoute(method, path string) {
	colour, ok := methodColours[method]
	if !ok {
		colour = defaultColour
	}
	displayMethod := colour + fmt.Sprintf(" %-7s", method) + resetColour
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
