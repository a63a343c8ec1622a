package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/kodpocztowy/internal/store"
	"github.com/kodpocztowy/internal/web/handlers"
	"github.com/kodpocztowy/internal/web/middleware"
)

// Server represents the web server.
type Server struct {
	config     *Config
	db         *sql.DB
	store      *store.Store
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance over an open database
// connection.
func NewServer(config *Config, db *sql.DB) *Server {
	server := &Server{
		config: config,
		db:     db,
		store:  store.New(db),
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	searchHandler := &handlers.SearchHandler{
		Store:        s.store,
		DefaultLimit: s.config.Search.DefaultLimit,
		MaxLimit:     s.config.Search.MaxLimit,
	}
	locationsHandler := &handlers.LocationsHandler{Store: s.store}
	healthHandler := &handlers.HealthHandler{DB: s.db}

	// Search endpoints
	s.router.HandleFunc("/postal-codes", searchHandler.SearchPostalCodes).Methods("GET")
	s.router.HandleFunc("/postal-codes/{code}", searchHandler.GetPostalCode).Methods("GET")

	// Location hierarchy endpoints
	s.router.HandleFunc("/locations", locationsHandler.Directory).Methods("GET")
	s.router.HandleFunc("/locations/provinces", locationsHandler.Provinces).Methods("GET")
	s.router.HandleFunc("/locations/counties", locationsHandler.Counties).Methods("GET")
	s.router.HandleFunc("/locations/municipalities", locationsHandler.Municipalities).Methods("GET")
	s.router.HandleFunc("/locations/cities", locationsHandler.Cities).Methods("GET")
	s.router.HandleFunc("/locations/streets", locationsHandler.Streets).Methods("GET")

	// Health check endpoint
	s.router.HandleFunc("/health", healthHandler.Health).Methods("GET")

	s.router.Use(middleware.CORS(s.config.CORS.AllowOrigin))
	s.router.Use(middleware.RequestLogging())
}

// Start starts the web server and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop

	fmt.Println("\nShutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}
