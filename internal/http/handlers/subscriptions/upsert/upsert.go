// Package upsert реализует назначение подписки пользователю администратором.
//
// Если у пользователя уже есть записи подписок, обновляется последняя по
// дате начала, иначе создается новая. Количество строк на пользователя
// при повторных вызовах не растет.
package upsert

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
	subservice "github.com/mrxception/ofmreddit/internal/services/subscription"
)

// Handler управляет апсертом подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики апсерта подписки.
type Service interface {
	Upsert(ctx context.Context, req models.DummyUpsertSubscription) (*models.SubscriptionView, error)
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
// @Summary Назначить или обновить подписку пользователя
// @Description Обновляет последнюю запись подписки пользователя или создает новую, если записей нет.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.DummyUpsertSubscription true "Данные подписки"
// @Success 200 {object} map[string]any "Актуальная подписка после апсерта"
// @Failure 400 {object} response.ErrorResponse "Некорректные даты или cooldown"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/subscriptions [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriptions.upsert"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUpsertSubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("user_uid", req.UserUID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	view, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		if errors.Is(err, subservice.ErrUnknownCooldown) {
			log.Error("unknown cooldown value")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown cooldown value"))
			return
		}
		log.Error("failed to upsert subscription", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not upsert subscription: "+err.Error()))
		return
	}

	log.Info("subscription upserted",
		slog.String("user_uid", view.UserUID),
		slog.Int("tier_id", view.TierID),
	)
	render.JSON(w, r, response.StatusOKWithData(view))
}
