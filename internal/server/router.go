// Package server wires handlers, middleware and storage into an HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/taskkeeper/internal/server/config"
	"github.com/iudanet/taskkeeper/internal/server/handlers"
	"github.com/iudanet/taskkeeper/internal/server/middleware"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/server/token"
)

// Deps собирает зависимости HTTP сервера
type Deps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Users   storage.UserStorage
	Todos   storage.TodoStorage
	Store   handlers.Pinger
	Tokens  *token.Service
	Version string
}

// NewRouter создает роутер со всеми эндпоинтами и middleware.
// Go 1.22 method patterns, префикс /api/v1.
func NewRouter(d Deps) http.Handler {
	authH := handlers.NewAuthHandler(d.Logger, d.Users, d.Tokens)
	todoH := handlers.NewTodoHandler(d.Logger, d.Todos)
	healthH := handlers.NewHealthHandler(d.Logger, d.Store, d.Version)

	// Защищенные эндпоинты требуют session token
	auth := middleware.AuthMiddleware(d.Logger, d.Tokens)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", healthH.Health)

	// Auth Gateway
	mux.HandleFunc("POST /api/v1/auth/signup", authH.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authH.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh-token", authH.Refresh)
	mux.HandleFunc("GET /api/v1/auth/validate-token", authH.Validate)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", authH.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", authH.ResetPassword)
	mux.Handle("PUT /api/v1/auth/change-password", auth(http.HandlerFunc(authH.ChangePassword)))
	mux.HandleFunc("POST /api/v1/auth/logout", authH.Logout)
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authH.Me)))

	// Todos, все за auth middleware
	mux.Handle("GET /api/v1/todos", auth(http.HandlerFunc(todoH.List)))
	mux.Handle("POST /api/v1/todos", auth(http.HandlerFunc(todoH.Create)))
	mux.Handle("GET /api/v1/todos/{id}", auth(http.HandlerFunc(todoH.Get)))
	mux.Handle("PUT /api/v1/todos/{id}", auth(http.HandlerFunc(todoH.Update)))
	mux.Handle("DELETE /api/v1/todos/{id}", auth(http.HandlerFunc(todoH.Delete)))
	mux.Handle("PATCH /api/v1/todos/{id}/toggle-complete", auth(http.HandlerFunc(todoH.ToggleComplete)))

	// Более строгие лимиты на credential-эндпоинтах
	authLimits := []middleware.PathRateLimit{
		{Path: "/api/v1/auth/signup", Rate: d.Config.AuthRateLimit, Window: d.Config.RateLimitWindow},
		{Path: "/api/v1/auth/login", Rate: d.Config.AuthRateLimit, Window: d.Config.RateLimitWindow},
		{Path: "/api/v1/auth/forgot-password", Rate: d.Config.AuthRateLimit, Window: d.Config.RateLimitWindow},
	}

	var handler http.Handler = mux
	handler = middleware.RateLimitByPathMiddleware(authLimits, d.Config.RateLimit, d.Config.RateLimitWindow, d.Logger)(handler)
	handler = middleware.LoggingWithSkip(d.Logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(d.Logger)(handler)

	return handler
}
