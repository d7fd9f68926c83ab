// Package copiedcaptions реализует список скопированных подписей для аналитики.
package copiedcaptions

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

// Handler управляет списком скопированных подписей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики аналитики копирований.
type Service interface {
	ListCopiedCaptions(ctx context.Context, limit, offset int) ([]*models.CopiedCaption, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список скопированных подписей
// @Tags Analytics
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "События копирования"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/copied-captions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.copiedcaptions"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := parsePage(r)

	items, err := h.service.ListCopiedCaptions(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list copied captions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list copied captions"))
		return
	}

	log.Info("copied captions listed", slog.Int("count", len(items)))
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
