// Package list реализует список тарифных планов.
package list

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

// Handler управляет списком тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка тарифов.
type Service interface {
	List(ctx context.Context) ([]*models.SubscriptionTier, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список тарифных планов
// @Tags Tiers
// @Produce  json
// @Success 200 {object} map[string]any "Тарифы с недельными лимитами"
// @Router /admin/subscription-tiers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tiers.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tiers, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list tiers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list tiers"))
		return
	}

	log.Info("tiers listed", slog.Int("count", len(tiers)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(tiers),
		"entries": tiers,
	}))
}
