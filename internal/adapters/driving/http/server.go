package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService          driving.AuthService
	userService          driving.UserService
	caseService          driving.CaseService
	templateService      driving.TemplateService
	transcriptionService driving.TranscriptionService

	// Infrastructure
	taskQueue   driven.TaskQueue
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	caseService driving.CaseService,
	templateService driving.TemplateService,
	transcriptionService driving.TranscriptionService,
	taskQueue driven.TaskQueue,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:               http.NewServeMux(),
		version:              cfg.Version,
		authService:          authService,
		userService:          userService,
		caseService:          caseService,
		templateService:      templateService,
		transcriptionService: transcriptionService,
		taskQueue:            taskQueue,
		db:                   db,
		redisClient:          redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.Handle("GET /metrics", promhttp.Handler())

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Setup endpoint (public, one-time use)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Admin-only user management
	s.router.Handle("GET /api/v1/users",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleListUsers))))
	s.router.Handle("POST /api/v1/users",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleCreateUser))))
	s.router.Handle("PUT /api/v1/users/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleUpdateUser))))
	s.router.Handle("DELETE /api/v1/users/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleDeleteUser))))

	// Template endpoints (admin-only for mutations)
	s.router.Handle("GET /api/v1/templates",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListTemplates)))
	s.router.Handle("GET /api/v1/templates/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetTemplate)))
	s.router.Handle("PUT /api/v1/templates/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleUploadTemplate))))
	s.router.Handle("DELETE /api/v1/templates/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleDeleteTemplate))))

	// Case endpoints (authenticated)
	s.router.Handle("POST /api/v1/cases",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateCase)))
	s.router.Handle("GET /api/v1/cases",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListCases)))
	s.router.Handle("GET /api/v1/cases/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetCase)))
	s.router.Handle("PUT /api/v1/cases/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateCase)))
	s.router.Handle("DELETE /api/v1/cases/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteCase)))
	s.router.Handle("POST /api/v1/cases/{id}/submit",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSubmitCase)))

	// Transcription endpoints (authenticated)
	s.router.Handle("POST /api/v1/cases/{id}/transcribe",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleTranscribe)))
	s.router.Handle("POST /api/v1/cases/{id}/enqueue",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleEnqueueTranscription)))
	s.router.Handle("GET /api/v1/cases/{id}/runs/latest",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLatestRun)))
	s.router.Handle("GET /api/v1/cases/{id}/document",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDownloadDocument)))
	s.router.Handle("POST /api/v1/preview",
		authMiddleware.Authenticate(http.HandlerFunc(s.handlePreview)))

	// Task status (authenticated)
	s.router.Handle("GET /api/v1/tasks/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetTask)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
