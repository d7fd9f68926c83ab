// Package update реализует частичное обновление настроек сайта администратором.
//
// Оба поля запроса опциональны, но хотя бы одно должно присутствовать.
// Каждое успешное обновление увеличивает ревизию настроек.
package update

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
	controlsservice "github.com/mrxception/ofmreddit/internal/services/sitecontrols"
)

// Handler управляет обновлением настроек сайта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления настроек.
type Service interface {
	Update(ctx context.Context, req models.DummyUpdateSiteControls) (*models.SiteControls, error)
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
// @Summary Обновить настройки сайта
// @Description Частично обновляет настройки. Пустой запрос без известных полей отклоняется.
// @Tags SiteControls
// @Accept  json
// @Produce  json
// @Param request body models.DummyUpdateSiteControls true "Изменяемые поля"
// @Success 200 {object} map[string]any "Настройки после обновления"
// @Failure 400 {object} response.ErrorResponse "Пустой запрос"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/site-controls [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sitecontrols.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUpdateSiteControls
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

	controls, err := h.service.Update(r.Context(), req)
	if err != nil {
		if errors.Is(err, controlsservice.ErrEmptyUpdate) {
			log.Error("empty update request")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no recognized fields to update"))
			return
		}
		log.Error("failed to update site controls", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update site controls"))
		return
	}

	log.Info("site controls updated", slog.Int("revision", controls.Revision))
	render.JSON(w, r, response.StatusOKWithData(controls))
}
