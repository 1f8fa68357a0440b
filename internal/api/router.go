package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.RoutePlanner) http.Handler {
	mux := http.NewServeMux()

	hostHandler := &handlers.HostHandler{Planner: planner}
	optimizeHandler := &handlers.OptimizeHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/hosts", hostHandler.List)
	mux.HandleFunc("/api/routes/optimize", optimizeHandler.Optimize)

	return requestIDMiddleware(loggingMiddleware(mux))
}
