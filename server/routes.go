package server

import (
	"net/http"

	"github.com/jrsteele09/go-storefront-api/internal/metrics"
	"github.com/jrsteele09/go-storefront-api/users"
)

func (s *Server) initRoutes() {
	s.RegisterRoute(http.MethodGet, RouteHealth, s.HealthHandler())
	if s.gatherer != nil {
		s.RegisterRoute(http.MethodGet, RouteMetrics, metrics.Handler(s.gatherer).ServeHTTP)
	}

	// USERS
	s.RegisterRoute(http.MethodPost, RouteUsersRegister, s.RegisterHandler(), s.RateLimit(RouteUsersRegister))
	s.RegisterRoute(http.MethodPost, RouteUsersLogin, s.LoginHandler(), s.RateLimit(RouteUsersLogin))
	s.RegisterRoute(http.MethodGet, RouteUsersVerifyToken, s.VerifyTokenHandler(), s.RequireAuth())
	s.RegisterRoute(http.MethodPut, RouteUsersUpdate, s.UpdateUserHandler(), s.RequireAuth())

	// PRODUCTS
	seller := []Middleware{s.RequireAuth(), s.RequireRole(users.RoleSeller)}
	buyer := []Middleware{s.RequireAuth(), s.RequireRole(users.RoleBuyer)}

	s.RegisterRoute(http.MethodPost, RouteProductsCreate, s.CreateProductHandler(), seller...)
	s.RegisterRoute(http.MethodGet, RouteProductsReadAll, s.ListProductsHandler(), buyer...)
	s.RegisterRoute(http.MethodGet, RouteProductsReadOne, s.GetProductHandler(), buyer...)
	s.RegisterRoute(http.MethodPut, RouteProductsUpdate, s.UpdateProductHandler(), seller...)
	s.RegisterRoute(http.MethodDelete, RouteProductsDelete, s.DeleteProductHandler(), seller...)
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "ok", nil)
	}
}
