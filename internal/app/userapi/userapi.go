package userapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/nandanksingh/secure-user-api/internal/cache"
	"github.com/nandanksingh/secure-user-api/internal/config"
	"github.com/nandanksingh/secure-user-api/internal/lib/jwt"
	"github.com/nandanksingh/secure-user-api/internal/lib/rabbitmq"
	"github.com/nandanksingh/secure-user-api/internal/lib/sl"
	"github.com/nandanksingh/secure-user-api/internal/migrations"
	authservice "github.com/nandanksingh/secure-user-api/internal/services/auth"
	userservice "github.com/nandanksingh/secure-user-api/internal/services/user"
	"github.com/nandanksingh/secure-user-api/internal/storage/repository"
)

// App объединяет HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: хранилище, миграции, кэш, брокер сообщений и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер опционален: без него события регистрации просто не публикуются.
	var notifier userservice.RegistrationNotifier
	if cfg.RabbitConnectionString != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetUserEventQueues())
		if err != nil {
			return nil, err
		}
		notifier = rabbitmq.NewNotifier(ch)
	} else {
		logger.Warn("rabbitmq connection string is empty, registration events disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	userService := userservice.NewUserService(db, cacheRedis, notifier, logger)
	authService := authservice.NewAuthService(db, jwtMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService, authService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
