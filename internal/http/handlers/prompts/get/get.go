// Package get реализует чтение промпта вместе с прикреплёнными документами.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// Handler управляет чтением промптов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения промпта.
type Service interface {
	Get(ctx context.Context, key string) (*models.Prompt, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить промпт по ключу
// @Tags Prompts
// @Produce  json
// @Param key path string true "Ключ промпта"
// @Success 200 {object} map[string]any "Промпт и документы"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Промпт не найден"
// @Router /admin/prompts/{key} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prompts.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	key := chi.URLParam(r, "key")
	if key == "" {
		log.Error("missing key url param")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing prompt key"))
		return
	}

	prompt, err := h.service.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("prompt not found", slog.String("key", key))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("prompt not found"))
			return
		}
		log.Error("failed to read prompt", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read prompt"))
		return
	}

	log.Info("prompt read", slog.String("key", key))
	render.JSON(w, r, response.StatusOKWithData(prompt))
}
