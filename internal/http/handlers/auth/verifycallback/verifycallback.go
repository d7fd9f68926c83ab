// Package verifycallback реализует подтверждение почты по ссылке из письма.
// Почта и код приходят query-параметрами, тело запроса не используется.
package verifycallback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	authservice "github.com/mrxception/ofmreddit/internal/services/auth"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// Handler управляет подтверждением почты по ссылке.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подтверждения по ссылке.
type Service interface {
	VerifyCallback(ctx context.Context, email, code string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтверждение почты по ссылке из письма
// @Tags Auth
// @Produce  json
// @Param email query string true "Почта пользователя"
// @Param code query string true "Код подтверждения"
// @Success 200 {object} map[string]any "Почта подтверждена"
// @Failure 400 {object} response.ErrorResponse "Отсутствуют параметры или неверный код"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /auth/verify-callback [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verifycallback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("code")
	if email == "" || code == "" {
		log.Error("missing email or code query params")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("email and code are required"))
		return
	}

	if err := h.service.VerifyCallback(r.Context(), email, code); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Error("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, authservice.ErrCodeMismatch), errors.Is(err, authservice.ErrCodeExpired):
			log.Error("verification rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to verify email", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not verify email"))
		}
		return
	}

	log.Info("email verified via callback", slog.String("email", email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "email verified",
	}))
}
