package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mrxception/ofmreddit/internal/http/response"
	"github.com/mrxception/ofmreddit/internal/lib/sl"
	"github.com/mrxception/ofmreddit/internal/models"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// BanReader возвращает блокировку пользователя или repository.ErrNotFound.
type BanReader interface {
	GetBan(ctx context.Context, userUID string) (*models.BannedUser, error)
}

// BanMiddleware отклоняет запросы заблокированных пользователей со статусом 403.
func BanMiddleware(bans BanReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.BanMiddleware"

			reqLog := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				reqLog.Error("user uid not found in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ban, err := bans.GetBan(r.Context(), userUID)
			if err == nil {
				reqLog.Error("banned user rejected", slog.String("user_uid", userUID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("account banned: "+ban.Reason))
				return
			}
			if !errors.Is(err, repository.ErrNotFound) {
				reqLog.Error("failed to check ban", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
