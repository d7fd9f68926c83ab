package ofmreddit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/mrxception/ofmreddit/internal/aiprovider"
	"github.com/mrxception/ofmreddit/internal/cache"
	"github.com/mrxception/ofmreddit/internal/config"
	"github.com/mrxception/ofmreddit/internal/lib/jwt"
	"github.com/mrxception/ofmreddit/internal/lib/rabbitmq"
	"github.com/mrxception/ofmreddit/internal/migrations"
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

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetMailQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	mailPublisher := rabbitmq.NewMailPublisher(ch)
	aiClient := aiprovider.NewClient(cfg.AIAPIURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout)

	auth := authservice.NewAuthService(db, jwtMaker, mailPublisher)
	users := usersservice.NewUserAdminService(db, logger)
	tiers := tierservice.NewTierService(db, logger)
	subscriptions := subservice.NewSubscriptionService(db, logger)
	controls := controlsservice.NewSiteControlsService(db, cacheRedis, logger)
	prompts := promptservice.NewPromptService(db, cacheRedis, logger)
	captions := captionservice.NewCaptionService(db, prompts, aiClient, logger)
	analytics := analyticsservice.NewAnalyticsService(db, logger)
	exporter := exportservice.NewExportService(db, cfg.MaxRows, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db,
		auth, users, tiers, subscriptions, controls, prompts, captions, analytics, exporter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
