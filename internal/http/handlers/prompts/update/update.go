// Package update реализует обновление промпта администратором.
// Набор документов в запросе полностью заменяет прикреплённый.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
)

// Handler управляет обновлением промптов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления промпта.
type Service interface {
	Update(ctx context.Context, key string, req models.DummyUpdatePrompt) (*models.Prompt, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить промпт
// @Tags Prompts
// @Accept  json
// @Produce  json
// @Param key path string true "Ключ промпта"
// @Param request body models.DummyUpdatePrompt true "Текст промпта и документы"
// @Success 200 {object} map[string]any "Промпт после обновления"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/prompts/{key} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prompts.update"
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

	var req models.DummyUpdatePrompt
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	prompt, err := h.service.Update(r.Context(), key, req)
	if err != nil {
		log.Error("failed to update prompt", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update prompt"))
		return
	}

	log.Info("prompt updated", slog.String("key", key), slog.Int("documents", len(prompt.Documents)))
	render.JSON(w, r, response.StatusOKWithData(prompt))
}
