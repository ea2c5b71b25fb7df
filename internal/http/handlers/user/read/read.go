// Package read реализует HTTP-обработчик для получения конкретного пользователя по UID.
//
// Handler извлекает UID из URL-параметров, вызывает бизнес-логику для чтения пользователя
// и возвращает его публичное представление в JSON-формате.
//
// В случае ошибок формирует соответствующие HTTP-ответы с описанием проблемы.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/nandanksingh/secure-user-api/internal/http/response"
	"github.com/nandanksingh/secure-user-api/internal/lib/sl"
	"github.com/nandanksingh/secure-user-api/internal/models"
)

// Handler обрабатывает запросы на получение пользователя по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения пользователя
}

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	Get(ctx context.Context, uid string) (*models.User, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получение пользователя
// @Description Возвращает публичные данные пользователя по его UID.
// @Tags Users
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} map[string]any "Данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /users/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("invalid uid format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid uid"))
		return
	}

	user, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		if errors.Is(err, models.ErrStorageUnavailable) {
			log.Error("storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage unavailable"))
			return
		}
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read user"))
		return
	}

	log.Info("success to read user", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user.View(),
	}))
}
