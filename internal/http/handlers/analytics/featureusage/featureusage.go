// Package featureusage реализует список событий использования функций сервиса.
package featureusage

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Handler управляет списком событий использования функций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики аналитики функций.
type Service interface {
	ListFeatureUsage(ctx context.Context, limit, offset int) ([]*models.FeatureUsage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список событий использования функций
// @Tags Analytics
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "События использования"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/feature-usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.featureusage"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := parsePage(r)

	items, err := h.service.ListFeatureUsage(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list feature usage", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list feature usage"))
		return
	}

	log.Info("feature usage listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(items),
		"entries": items,
	}))
}

func parsePage(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= maxLimit {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
