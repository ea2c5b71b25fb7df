// Package list реализует HTTP-обработчик для постраничного списка пользователей.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nandanksingh/secure-user-api/internal/http/response"
	"github.com/nandanksingh/secure-user-api/internal/lib/sl"
	"github.com/nandanksingh/secure-user-api/internal/models"
)

const maxLimit = 100

// Handler обрабатывает запросы на получение списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списочного чтения.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей, отсортированных по дате регистрации.
// @Tags Users
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10, максимум 100)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			log.Error("storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage unavailable"))
			return
		}
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}

	log.Info("list users", "count", len(views))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(views),
		"users":      views,
	}))
}
