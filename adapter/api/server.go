// Package api provides the HTTP API for the coaching backend.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP API server.
type Server struct {
	mux      *http.ServeMux
	server   *http.Server
	logger   *slog.Logger
	handlers Handlers
}

// Handlers groups the per-context HTTP handlers the server routes to.
type Handlers struct {
	Profiles  *ProfileHandler
	Habits    *HabitsHandler
	Journal   *JournalHandler
	Planning  *PlanningHandler
	Assistant *AssistantHandler
	Insights  *InsightsHandler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:      mux,
		logger:   logger,
		handlers: handlers,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// Profiles
	s.mux.HandleFunc("POST /api/users", s.handlers.Profiles.CreateProfile)
	s.mux.HandleFunc("GET /api/users/{userID}", s.handlers.Profiles.GetProfile)
	s.mux.HandleFunc("PUT /api/users/{userID}", s.handlers.Profiles.UpdateProfile)

	// Habits
	s.mux.HandleFunc("POST /api/habits/log", s.handlers.Habits.LogHabit)
	s.mux.HandleFunc("GET /api/habits/{userID}/streaks", s.handlers.Habits.GetStreaks)
	s.mux.HandleFunc("GET /api/habits/{userID}/{date}", s.handlers.Habits.ListDayLogs)

	// Daily logs
	s.mux.HandleFunc("POST /api/daily-log", s.handlers.Journal.UpsertDailyLog)
	s.mux.HandleFunc("GET /api/daily-log/{userID}/{date}", s.handlers.Journal.GetDailyLog)
	s.mux.HandleFunc("GET /api/daily-logs/{userID}", s.handlers.Journal.ListDailyLogs)

	// Tasks
	s.mux.HandleFunc("POST /api/tasks", s.handlers.Planning.CreateTask)
	s.mux.HandleFunc("GET /api/tasks/{userID}/{date}", s.handlers.Planning.ListTasks)
	s.mux.HandleFunc("PUT /api/tasks/{taskID}/complete", s.handlers.Planning.CompleteTask)
	s.mux.HandleFunc("DELETE /api/tasks/{taskID}", s.handlers.Planning.DeleteTask)

	// Schedule
	s.mux.HandleFunc("POST /api/schedule/{userID}/generate", s.handlers.Assistant.GenerateSchedule)
	s.mux.HandleFunc("GET /api/schedule/{userID}/{date}", s.handlers.Planning.GetSchedule)
	s.mux.HandleFunc("PUT /api/schedule/{itemID}/complete", s.handlers.Planning.CompleteScheduleItem)

	// Assistant
	s.mux.HandleFunc("POST /api/chat", s.handlers.Assistant.SendMessage)
	s.mux.HandleFunc("GET /api/chat/{userID}/history", s.handlers.Assistant.GetChatHistory)
	s.mux.HandleFunc("POST /api/analysis/{userID}", s.handlers.Assistant.GenerateAnalysis)
	s.mux.HandleFunc("GET /api/analysis/{userID}/{date}", s.handlers.Assistant.GetAnalysis)

	// Insights and points
	s.mux.HandleFunc("GET /api/stats/{userID}", s.handlers.Insights.GetStats)
	s.mux.HandleFunc("GET /api/insights/{userID}", s.handlers.Insights.GetWeeklyInsights)
	s.mux.HandleFunc("GET /api/points/{userID}", s.handlers.Insights.GetPoints)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Log error but can't do much at this point
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
