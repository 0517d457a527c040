package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/hardwood/internal/cache"
	"github.com/fortuna/hardwood/internal/store"
)

// Server is the read-only query API the dashboard consumes.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. queryCache may be nil; responses
// are then served straight from the database.
func NewServer(port string, db *store.Database, queryCache *cache.RedisCache) *Server {
	handler := NewHandler(db, queryCache)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/conferences/{key}", handler.GetConference).Methods("GET")
	api.HandleFunc("/conferences/{key}/seasons/{year}/players", handler.GetSeasonPlayers).Methods("GET")
	api.HandleFunc("/players/search", handler.SearchPlayers).Methods("GET")
	api.HandleFunc("/players/{name}", handler.GetPlayer).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// LoggingMiddleware logs every request line.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// RecoveryMiddleware turns handler panics into 500 responses.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s %s: %v", r.Method, r.URL.Path, rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
