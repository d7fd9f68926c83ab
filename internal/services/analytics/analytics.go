// Package services содержит бизнес-логику аналитики использования сервиса.
package services

import (
	"context"
	"log/slog"

	"github.com/mrxception/ofmreddit/internal/models"
)

// AnalyticsRepository определяет методы хранилища аналитики.
type AnalyticsRepository interface {
	InsertCopiedCaption(ctx context.Context, c models.CopiedCaption) (int, error)
	InsertFeatureUsage(ctx context.Context, userUID, feature string) error
	ListCopiedCaptions(ctx context.Context, limit, offset int) ([]*models.CopiedCaption, error)
	ListFeatureUsage(ctx context.Context, limit, offset int) ([]*models.FeatureUsage, error)
}

// AnalyticsService учитывает события копирования подписей и
// использования функций.
type AnalyticsService struct {
	repo AnalyticsRepository
	log  *slog.Logger
}

// NewAnalyticsService создает новый экземпляр AnalyticsService.
func NewAnalyticsService(repo AnalyticsRepository, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo: repo,
		log:  log,
	}
}

// TrackCopy сохраняет событие копирования подписи и отмечает
// использование функции.
func (s *AnalyticsService) TrackCopy(ctx context.Context, userUID string, req models.DummyTrackCopy) (int, error) {
	id, err := s.repo.InsertCopiedCaption(ctx, models.CopiedCaption{
		UserUID:   userUID,
		Caption:   req.Caption,
		Subreddit: req.Subreddit,
	})
	if err != nil {
		return 0, err
	}
	if err := s.repo.InsertFeatureUsage(ctx, userUID, models.FeatureCaptionCopy); err != nil {
		s.log.Warn("failed to record feature usage", slog.Any("err", err))
	}
	return id, nil
}

// ListCopiedCaptions возвращает события копирования с пагинацией.
func (s *AnalyticsService) ListCopiedCaptions(ctx context.Context, limit, offset int) ([]*models.CopiedCaption, error) {
	return s.repo.ListCopiedCaptions(ctx, limit, offset)
}

// ListFeatureUsage возвращает события использования функций с пагинацией.
func (s *AnalyticsService) ListFeatureUsage(ctx context.Context, limit, offset int) ([]*models.FeatureUsage, error) {
	return s.repo.ListFeatureUsage(ctx, limit, offset)
}
