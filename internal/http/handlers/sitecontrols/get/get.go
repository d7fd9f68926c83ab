// Package get реализует чтение глобальных настроек сайта.
// Строка настроек создается лениво при первом обращении.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
)

// Handler управляет чтением настроек сайта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики настроек сайта.
type Service interface {
	Get(ctx context.Context) (*models.SiteControls, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить настройки сайта
// @Tags SiteControls
// @Produce  json
// @Success 200 {object} map[string]any "Текущие настройки"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/site-controls [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sitecontrols.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	controls, err := h.service.Get(r.Context())
	if err != nil {
		log.Error("failed to read site controls", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read site controls"))
		return
	}

	log.Info("site controls read", slog.Int("revision", controls.Revision))
	render.JSON(w, r, response.StatusOKWithData(controls))
}
