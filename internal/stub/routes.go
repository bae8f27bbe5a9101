package stub

import (
	"github.com/gorilla/mux"
)

func SetupRoutes(h *Handler, jwtSecret string) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Open endpoints
	r.HandleFunc("/api/Employee/login", h.Login).Methods("POST")
	r.HandleFunc("/api/Employee/register", h.Register).Methods("POST")

	// Employee endpoints (token required)
	emp := r.PathPrefix("/api/Employee").Subrouter()
	emp.Use(JWTAuthMiddlewareWithSecret(jwtSecret))
	emp.HandleFunc("/{id}", h.GetEmployee).Methods("GET")
	emp.HandleFunc("/{id}", h.UpdateEmployee).Methods("PUT")
	emp.HandleFunc("/{id}/image", h.UpdateImage).Methods("PUT")

	// Admin endpoints (token + admin role)
	adm := r.PathPrefix("/api/Admin").Subrouter()
	adm.Use(JWTAuthMiddlewareWithSecret(jwtSecret))
	adm.Use(AdminOnlyMiddleware)
	adm.HandleFunc("/employees", h.ListEmployees).Methods("GET")
	adm.HandleFunc("/employees/{id}", h.AdminUpdateEmployee).Methods("PUT")
	adm.HandleFunc("/employees/{id}/status", h.UpdateStatus).Methods("PUT")

	return r
}
