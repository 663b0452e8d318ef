package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"cawebsite-backend/internal/auth"
	"cawebsite-backend/internal/cache"
	"cawebsite-backend/internal/config"
	"cawebsite-backend/internal/db"
	"cawebsite-backend/internal/middleware"
	"cawebsite-backend/internal/notifications"
	"cawebsite-backend/internal/storage"
	"cawebsite-backend/internal/validation"
)

// Server carries the shared dependencies for the handlers that work on the
// smaller collections directly, without a dedicated service layer.
type Server struct {
	Cfg    *config.Config
	Cols   *db.Collections
	Val    *validation.Validator
	Log    *slog.Logger
	Cache  cache.Cache
	Mailer *notifications.Service
	JWT    *auth.Manager
	Files  *storage.Store
}

func (s *Server) cacheTTL() time.Duration {
	return time.Duration(s.Cfg.CacheTTLSeconds) * time.Second
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
