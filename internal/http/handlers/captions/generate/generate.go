// Package generate реализует HTTP-обработчик генерации подписей.
//
// Handler проверяет недельный лимит тарифа пользователя, собирает промпт и
// вызывает внешнего AI-провайдера через сервис генерации.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mrxception/ofmreddit/internal/http/middlewarectx"
	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
	captionservice "github.com/mrxception/ofmreddit/internal/services/captions"
)

// Handler управляет HTTP-запросами на генерацию подписей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики генерации подписей.
type Service interface {
	Generate(ctx context.Context, userUID string, req models.DummyGenerateCaption) ([]string, error)
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
// @Summary Сгенерировать подписи для сабреддита
// @Description Генерирует до 10 подписей через AI-провайдера в рамках недельного лимита тарифа.
// @Tags Captions
// @Accept  json
// @Produce  json
// @Param request body models.DummyGenerateCaption true "Сабреддит, тема и количество"
// @Success 200 {object} map[string]any "Сгенерированные подписи"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Лимит исчерпан или нет активного тарифа"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /captions/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.captions.generate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyGenerateCaption
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	captions, err := h.service.Generate(r.Context(), userUID, req)
	if err != nil {
		switch {
		case errors.Is(err, captionservice.ErrWeeklyLimitReached):
			log.Error("weekly caption limit reached", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("weekly caption limit reached"))
		case errors.Is(err, captionservice.ErrNoActiveTier):
			log.Error("no active tier", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("no active subscription tier"))
		default:
			log.Error("failed to generate captions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not generate captions"))
		}
		return
	}

	log.Info("captions generated", slog.Int("count", len(captions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"captions": captions,
		"count":    len(captions),
	}))
}
