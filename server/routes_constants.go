package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Operational Routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// User Routes
	RouteUsersRegister    = "/api/users/register"
	RouteUsersLogin       = "/api/users/login"
	RouteUsersVerifyToken = "/api/users/verifytoken"
	RouteUsersUpdate      = "/api/users/update/{id}"

	// Product Routes
	RouteProductsCreate  = "/api/products/create"
	RouteProductsReadAll = "/api/products/readAll"
	RouteProductsReadOne = "/api/products/readOne/{id}"
	RouteProductsUpdate  = "/api/products/update/{id}"
	RouteProductsDelete  = "/api/products/delete/{id}"
)
