// Package userapi предоставляет маршруты и точку сборки основного приложения.
package userapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nandanksingh/secure-user-api/internal/http/handlers/auth/login"
	"github.com/nandanksingh/secure-user-api/internal/http/handlers/auth/register"
	"github.com/nandanksingh/secure-user-api/internal/http/handlers/user/health"
	"github.com/nandanksingh/secure-user-api/internal/http/handlers/user/list"
	"github.com/nandanksingh/secure-user-api/internal/http/handlers/user/read"
	"github.com/nandanksingh/secure-user-api/internal/http/handlers/user/remove"
	"github.com/nandanksingh/secure-user-api/internal/http/middlewarectx"
	authservice "github.com/nandanksingh/secure-user-api/internal/services/auth"
	userservice "github.com/nandanksingh/secure-user-api/internal/services/user"
	"github.com/nandanksingh/secure-user-api/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *userservice.UserService, authService *authservice.AuthService, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/users", list.New(logger, userService).ServeHTTP)
			r.Get("/users/{uid}", read.New(logger, userService).ServeHTTP)
			r.Delete("/users/{uid}", remove.New(logger, userService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
