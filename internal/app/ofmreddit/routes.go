// Package ofmreddit предоставляет маршруты и запуск основного приложения.
package ofmreddit

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	copiedcaptions "github.com/mrxception/ofmreddit/internal/http/handlers/analytics/copiedcaptions"
	featureusage "github.com/mrxception/ofmreddit/internal/http/handlers/analytics/featureusage"
	"github.com/mrxception/ofmreddit/internal/http/handlers/auth/login"
	"github.com/mrxception/ofmreddit/internal/http/handlers/auth/register"
	"github.com/mrxception/ofmreddit/internal/http/handlers/auth/resend"
	"github.com/mrxception/ofmreddit/internal/http/handlers/auth/verifycallback"
	"github.com/mrxception/ofmreddit/internal/http/handlers/auth/verifyotp"
	"github.com/mrxception/ofmreddit/internal/http/handlers/captions/generate"
	"github.com/mrxception/ofmreddit/internal/http/handlers/captions/trackcopy"
	"github.com/mrxception/ofmreddit/internal/http/handlers/export"
	"github.com/mrxception/ofmreddit/internal/http/handlers/health"
	promptget "github.com/mrxception/ofmreddit/internal/http/handlers/prompts/get"
	promptupdate "github.com/mrxception/ofmreddit/internal/http/handlers/prompts/update"
	controlsget "github.com/mrxception/ofmreddit/internal/http/handlers/sitecontrols/get"
	controlsupdate "github.com/mrxception/ofmreddit/internal/http/handlers/sitecontrols/update"
	sublist "github.com/mrxception/ofmreddit/internal/http/handlers/subscriptions/list"
	subupsert "github.com/mrxception/ofmreddit/internal/http/handlers/subscriptions/upsert"
	tierlist "github.com/mrxception/ofmreddit/internal/http/handlers/tiers/list"
	tierupdate "github.com/mrxception/ofmreddit/internal/http/handlers/tiers/update"
	userban "github.com/mrxception/ofmreddit/internal/http/handlers/users/ban"
	userlist "github.com/mrxception/ofmreddit/internal/http/handlers/users/list"
	userremove "github.com/mrxception/ofmreddit/internal/http/handlers/users/remove"
	userrename "github.com/mrxception/ofmreddit/internal/http/handlers/users/rename"
	userunban "github.com/mrxception/ofmreddit/internal/http/handlers/users/unban"
	"github.com/mrxception/ofmreddit/internal/http/middlewarectx"
	analyticsservice "github.com/mrxception/ofmreddit/internal/services/analytics"
	authservice "github.com/mrxception/ofmreddit/internal/services/auth"
	captionservice "github.com/mrxception/ofmreddit/internal/services/captions"
	exportservice "github.com/mrxception/ofmreddit/internal/services/export"
	promptservice "github.com/mrxception/ofmreddit/internal/services/prompts"
	controlsservice "github.com/mrxception/ofmreddit/internal/services/sitecontrols"
	subservice "github.com/mrxception/ofmreddit/internal/services/subscription"
	tierservice "github.com/mrxception/ofmreddit/internal/services/tiers"
	usersservice "github.com/mrxception/ofmreddit/internal/services/users"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	db *repository.Storage,
	auth *authservice.AuthService,
	users *usersservice.UserAdminService,
	tiers *tierservice.TierService,
	subscriptions *subservice.SubscriptionService,
	controls *controlsservice.SiteControlsService,
	prompts *promptservice.PromptService,
	captions *captionservice.CaptionService,
	analytics *analyticsservice.AnalyticsService,
	exporter *exportservice.ExportService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, auth).ServeHTTP)
		r.Post("/auth/verify-otp", verifyotp.New(logger, auth).ServeHTTP)
		r.Post("/auth/verify-callback", verifycallback.New(logger, auth).ServeHTTP)
		r.Post("/auth/resend-verification", resend.New(logger, auth).ServeHTTP)

		// Группа с JWT аутентификацией и проверкой блокировки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(auth, logger))
			r.Use(middlewarectx.BanMiddleware(db, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/captions/generate", generate.New(logger, captions).ServeHTTP)
			r.Post("/captions/track-copy", trackcopy.New(logger, analytics).ServeHTTP)
			r.Post("/export", export.New(logger, exporter).ServeHTTP)
		})

		// Административная группа
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(auth, logger))
			r.Use(middlewarectx.AdminMiddleware(db, logger))
			r.Get("/site-controls", controlsget.New(logger, controls).ServeHTTP)
			r.Put("/site-controls", controlsupdate.New(logger, controls).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, subscriptions).ServeHTTP)
			r.Put("/subscriptions", subupsert.New(logger, subscriptions).ServeHTTP)
			r.Get("/subscription-tiers", tierlist.New(logger, tiers).ServeHTTP)
			r.Put("/subscription-tiers", tierupdate.New(logger, tiers).ServeHTTP)
			r.Get("/users", userlist.New(logger, users).ServeHTTP)
			r.Put("/users/{uid}", userrename.New(logger, users).ServeHTTP)
			r.Delete("/users/{uid}", userremove.New(logger, users).ServeHTTP)
			r.Post("/users/{uid}/ban", userban.New(logger, users).ServeHTTP)
			r.Delete("/users/{uid}/ban", userunban.New(logger, users).ServeHTTP)
			r.Get("/prompts/{key}", promptget.New(logger, prompts).ServeHTTP)
			r.Put("/prompts/{key}", promptupdate.New(logger, prompts).ServeHTTP)
			r.Get("/copied-captions", copiedcaptions.New(logger, analytics).ServeHTTP)
			r.Get("/feature-usage", featureusage.New(logger, analytics).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
